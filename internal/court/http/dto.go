package http

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/court"
)

type CourtResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	BasePrice float64   `json:"base_price"`
	Amenities []string  `json:"amenities"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return CourtResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		BasePrice: c.BasePrice,
		Amenities: amenities,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CourtTag is the compact reference embedded in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateCourtRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=indoor outdoor"`
	BasePrice float64  `json:"base_price" binding:"min=0"`
	Amenities []string `json:"amenities"`
}

type UpdateCourtRequest struct {
	Name      *string  `json:"name"`
	Type      *string  `json:"type" binding:"omitempty,oneof=indoor outdoor"`
	BasePrice *float64 `json:"base_price" binding:"omitempty,min=0"`
	Amenities []string `json:"amenities"`
	IsActive  *bool    `json:"is_active"`
}
