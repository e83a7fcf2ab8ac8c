package http

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// WindowDTO mirrors coach.Window with "HH:MM" times on the wire.
type WindowDTO struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (w WindowDTO) toModel() (coach.Window, error) {
	r, err := timeslot.ParseRange(w.StartTime, w.EndTime)
	if err != nil {
		return coach.Window{}, err
	}
	return coach.Window{DayOfWeek: w.DayOfWeek, Start: r.Start, End: r.End}, nil
}

func windowsToModel(in []WindowDTO) ([]coach.Window, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]coach.Window, len(in))
	for i, w := range in {
		m, err := w.toModel()
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

type CoachResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	HourlyRate     float64        `json:"hourly_rate"`
	Specialization []string       `json:"specialization"`
	Availability   []coach.Window `json:"availability"`
	Bio            string         `json:"bio,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewCoachResponse(c *coach.Coach) CoachResponse {
	spec := c.Specialization
	if spec == nil {
		spec = []string{}
	}
	windows := c.Availability
	if windows == nil {
		windows = []coach.Window{}
	}
	return CoachResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		HourlyRate:     c.HourlyRate,
		Specialization: spec,
		Availability:   windows,
		Bio:            c.Bio,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type CreateCoachRequest struct {
	Name           string      `json:"name" binding:"required"`
	Email          string      `json:"email" binding:"required,email"`
	Phone          string      `json:"phone"`
	HourlyRate     float64     `json:"hourly_rate" binding:"min=0"`
	Specialization []string    `json:"specialization"`
	Availability   []WindowDTO `json:"availability"`
	Bio            string      `json:"bio"`
}

type UpdateCoachRequest struct {
	Name           *string     `json:"name"`
	Email          *string     `json:"email" binding:"omitempty,email"`
	Phone          *string     `json:"phone"`
	HourlyRate     *float64    `json:"hourly_rate" binding:"omitempty,min=0"`
	Specialization []string    `json:"specialization"`
	Availability   []WindowDTO `json:"availability"`
	Bio            *string     `json:"bio"`
	IsActive       *bool       `json:"is_active"`
}
