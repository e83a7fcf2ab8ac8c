package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/courtreserve/court-reserve-backend/internal/availability"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/response"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// equipmentParam is the JSON shape of the ?equipment= query parameter.
type equipmentParam struct {
	EquipmentID string `json:"equipment_id"`
	Quantity    int    `json:"quantity"`
}

// Check handles GET /availability/check.
func (h *Handler) Check(c *gin.Context) {
	date, err := time.Parse(availability.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	slot, err := timeslot.ParseRange(c.Query("startTime"), c.Query("endTime"))
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	var selections []equipment.Selection
	if raw := c.Query("equipment"); raw != "" {
		var params []equipmentParam
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "equipment must be a JSON array"})
			return
		}
		for _, p := range params {
			if p.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "equipment quantity must be at least 1"})
				return
			}
			selections = append(selections, equipment.Selection{
				EquipmentID: p.EquipmentID,
				Quantity:    p.Quantity,
			})
		}
	}

	result, err := h.service.Check(c.Request.Context(), availability.CheckRequest{
		Date:      date,
		Slot:      slot,
		CourtID:   c.Query("courtId"),
		CoachID:   c.Query("coachId"),
		Equipment: selections,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Slots handles GET /availability/slots.
func (h *Handler) Slots(c *gin.Context) {
	date, err := time.Parse(availability.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	grid, err := h.service.SlotsForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}
