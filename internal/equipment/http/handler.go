package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/response"
)

type Handler struct {
	service equipment.Service
}

func NewHandler(service equipment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := equipment.Filter{
		ActiveOnly: c.Query("include_inactive") != "true",
		Category:   c.Query("category"),
		Page:       page,
		PageSize:   pageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]EquipmentResponse, len(items))
	for i, e := range items {
		out[i] = NewEquipmentResponse(e)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewEquipmentResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	e, err := h.service.Create(c.Request.Context(), equipment.CreateRequest{
		Name:          body.Name,
		Category:      equipment.Category(body.Category),
		TotalQuantity: body.TotalQuantity,
		PricePerHour:  body.PricePerHour,
		Description:   body.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewEquipmentResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	var category *equipment.Category
	if body.Category != nil {
		cat := equipment.Category(*body.Category)
		category = &cat
	}

	e, err := h.service.Update(c.Request.Context(), id, equipment.UpdateRequest{
		Name:          body.Name,
		Category:      category,
		TotalQuantity: body.TotalQuantity,
		PricePerHour:  body.PricePerHour,
		Description:   body.Description,
		IsActive:      body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewEquipmentResponse(e))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "equipment deactivated"})
}
