package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/response"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

// List returns every rule, active or not, sorted by priority descending so
// admins see them in application order.
func (h *Handler) List(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context(), pricing.Filter{
		Type: c.Query("type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewRuleResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	conditions, err := body.Conditions.toModel()
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), pricing.CreateRuleRequest{
		Name:       body.Name,
		Type:       pricing.RuleType(body.Type),
		Conditions: conditions,
		Multiplier: body.Multiplier,
		Priority:   body.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRuleResponse(rule))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	var conditions *pricing.Conditions
	if body.Conditions != nil {
		parsed, err := body.Conditions.toModel()
		if err != nil {
			response.ValidationError(c, err)
			return
		}
		conditions = &parsed
	}

	rule, err := h.service.UpdateRule(c.Request.Context(), id, pricing.UpdateRuleRequest{
		Name:       body.Name,
		Conditions: conditions,
		Multiplier: body.Multiplier,
		Priority:   body.Priority,
		IsActive:   body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRuleResponse(rule))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	// Symmetric with the other resources: rules are deactivated, not
	// removed, even though booking snapshots would survive a hard delete.
	if err := h.service.DeactivateRule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pricing rule deactivated"})
}

// Calculate prices a prospective booking without persisting anything.
func (h *Handler) Calculate(c *gin.Context) {
	var body CalculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	slot, err := timeslot.ParseRange(body.StartTime, body.EndTime)
	if err != nil {
		response.ValidationError(c, err)
		return
	}
	date, err := time.Parse(pricing.DateLayout, body.Date)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	selections := make([]equipment.Selection, len(body.Equipment))
	for i, sel := range body.Equipment {
		selections[i] = equipment.Selection{EquipmentID: sel.EquipmentID, Quantity: sel.Quantity}
	}

	quote, err := h.service.Quote(c.Request.Context(), pricing.QuoteRequest{
		CourtID:   body.CourtID,
		Date:      date,
		Slot:      slot,
		Equipment: selections,
		CoachID:   body.CoachID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, quote.Breakdown)
}
