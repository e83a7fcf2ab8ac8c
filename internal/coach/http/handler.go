package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/response"
)

type Handler struct {
	service coach.Service
}

func NewHandler(service coach.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := coach.Filter{
		ActiveOnly: c.Query("include_inactive") != "true",
		Page:       page,
		PageSize:   pageSize,
	}

	coaches, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CoachResponse, len(coaches))
	for i, co := range coaches {
		items[i] = NewCoachResponse(co)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	co, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCoachResponse(co))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCoachRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	windows, err := windowsToModel(body.Availability)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	co, err := h.service.Create(c.Request.Context(), coach.CreateRequest{
		Name:           body.Name,
		Email:          body.Email,
		Phone:          body.Phone,
		HourlyRate:     body.HourlyRate,
		Specialization: body.Specialization,
		Availability:   windows,
		Bio:            body.Bio,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCoachResponse(co))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateCoachRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	windows, err := windowsToModel(body.Availability)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	co, err := h.service.Update(c.Request.Context(), id, coach.UpdateRequest{
		Name:           body.Name,
		Email:          body.Email,
		Phone:          body.Phone,
		HourlyRate:     body.HourlyRate,
		Specialization: body.Specialization,
		Availability:   windows,
		Bio:            body.Bio,
		IsActive:       body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCoachResponse(co))
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
	c.JSON(http.StatusOK, gin.H{"message": "coach deactivated"})
}
