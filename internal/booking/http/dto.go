package http

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/booking"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

// EquipmentSelectionDTO is a requested equipment line.
type EquipmentSelectionDTO struct {
	EquipmentID string `json:"equipment_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	CustomerName  string                  `json:"customer_name" binding:"required"`
	CustomerEmail string                  `json:"customer_email" binding:"required"`
	CustomerPhone string                  `json:"customer_phone"`
	CourtID       string                  `json:"court_id" binding:"required,uuid"`
	Date          string                  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string                  `json:"start_time" binding:"required"`
	EndTime       string                  `json:"end_time" binding:"required"`
	Equipment     []EquipmentSelectionDTO `json:"equipment"`
	CoachID       *string                 `json:"coach_id" binding:"omitempty,uuid"`
	Notes         string                  `json:"notes"`
}

type LineResponse struct {
	EquipmentID   string  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	Quantity      int     `json:"quantity"`
	PricePerHour  float64 `json:"price_per_hour"`
}

type BookingResponse struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
	CourtID       string            `json:"court_id"`
	CourtName     string            `json:"court_name"`
	Date          string            `json:"date"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	DurationHours float64           `json:"duration_hours"`
	Equipment     []LineResponse    `json:"equipment"`
	CoachID       *string           `json:"coach_id,omitempty"`
	CoachName     *string           `json:"coach_name,omitempty"`
	Pricing       pricing.Breakdown `json:"pricing"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	lines := make([]LineResponse, len(b.Equipment))
	for i, line := range b.Equipment {
		lines[i] = LineResponse{
			EquipmentID:   line.EquipmentID,
			EquipmentName: line.EquipmentName,
			Quantity:      line.Quantity,
			PricePerHour:  line.PricePerHour,
		}
	}

	return BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		CourtID:       b.CourtID,
		CourtName:     b.CourtName,
		Date:          b.Date.Format(booking.DateLayout),
		StartTime:     b.Slot.Start.String(),
		EndTime:       b.Slot.End.String(),
		DurationHours: b.Duration,
		Equipment:     lines,
		CoachID:       b.CoachID,
		CoachName:     b.CoachName,
		Pricing:       b.Pricing,
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
