package http

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

// ConditionsDTO mirrors pricing.Conditions with plain strings on the wire.
type ConditionsDTO struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Days      []int   `json:"days,omitempty"`
	CourtType *string `json:"court_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (d ConditionsDTO) toModel() (pricing.Conditions, error) {
	var c pricing.Conditions

	if d.StartTime != nil {
		t, err := timeslot.Parse(*d.StartTime)
		if err != nil {
			return c, err
		}
		c.StartTime = &t
	}
	if d.EndTime != nil {
		t, err := timeslot.Parse(*d.EndTime)
		if err != nil {
			return c, err
		}
		c.EndTime = &t
	}
	c.Days = d.Days
	if d.CourtType != nil {
		ct := court.Type(*d.CourtType)
		c.CourtType = &ct
	}
	c.StartDate = d.StartDate
	c.EndDate = d.EndDate
	return c, nil
}

type RuleResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Conditions pricing.Conditions `json:"conditions"`
	Multiplier float64            `json:"multiplier"`
	Priority   int                `json:"priority"`
	IsActive   bool               `json:"is_active"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func NewRuleResponse(r *pricing.Rule) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		Name:       r.Name,
		Type:       string(r.Type),
		Conditions: r.Conditions,
		Multiplier: r.Multiplier,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type CreateRuleRequest struct {
	Name       string        `json:"name" binding:"required"`
	Type       string        `json:"type" binding:"required,oneof=peak_hours weekend court_type seasonal"`
	Conditions ConditionsDTO `json:"conditions" binding:"required"`
	Multiplier float64       `json:"multiplier" binding:"required"`
	Priority   int           `json:"priority"`
}

type UpdateRuleRequest struct {
	Name       *string        `json:"name"`
	Conditions *ConditionsDTO `json:"conditions"`
	Multiplier *float64       `json:"multiplier"`
	Priority   *int           `json:"priority"`
	IsActive   *bool          `json:"is_active"`
}

// EquipmentSelectionDTO is a requested equipment line.
type EquipmentSelectionDTO struct {
	EquipmentID string `json:"equipment_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

// CalculateRequest asks for a price preview without creating a booking.
type CalculateRequest struct {
	CourtID   string                  `json:"court_id" binding:"required,uuid"`
	Date      string                  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string                  `json:"start_time" binding:"required"`
	EndTime   string                  `json:"end_time" binding:"required"`
	Equipment []EquipmentSelectionDTO `json:"equipment"`
	CoachID   *string                 `json:"coach_id" binding:"omitempty,uuid"`
}
