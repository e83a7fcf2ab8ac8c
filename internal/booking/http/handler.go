package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courtreserve/court-reserve-backend/internal/booking"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/response"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ValidationError(c, err)
		return
	}

	slot, err := timeslot.ParseRange(body.StartTime, body.EndTime)
	if err != nil {
		response.ValidationError(c, err)
		return
	}
	date, err := time.Parse(booking.DateLayout, body.Date)
	if err != nil {
		response.ValidationError(c, err)
		return
	}

	selections := make([]equipment.Selection, len(body.Equipment))
	for i, sel := range body.Equipment {
		selections[i] = equipment.Selection{EquipmentID: sel.EquipmentID, Quantity: sel.Quantity}
	}

	created, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		CourtID:       body.CourtID,
		Date:          date,
		Slot:          slot,
		Equipment:     selections,
		CoachID:       body.CoachID,
		Notes:         body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := booking.Filter{
		CourtID:  c.Query("court_id"),
		CoachID:  c.Query("coach_id"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(booking.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// Cancel releases the slot and restores equipment stock. Cancelling an
// already cancelled booking succeeds and returns the stored state.
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}
