package http

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/equipment"
)

type EquipmentResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	PricePerHour      float64   `json:"price_per_hour"`
	Description       string    `json:"description,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewEquipmentResponse(e *equipment.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:                e.ID,
		Name:              e.Name,
		Category:          string(e.Category),
		TotalQuantity:     e.TotalQuantity,
		AvailableQuantity: e.AvailableQuantity,
		PricePerHour:      e.PricePerHour,
		Description:       e.Description,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

type CreateEquipmentRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category" binding:"required,oneof=racket shoes other"`
	TotalQuantity int     `json:"total_quantity" binding:"min=0"`
	PricePerHour  float64 `json:"price_per_hour" binding:"min=0"`
	Description   string  `json:"description"`
}

type UpdateEquipmentRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category" binding:"omitempty,oneof=racket shoes other"`
	TotalQuantity *int     `json:"total_quantity" binding:"omitempty,min=0"`
	PricePerHour  *float64 `json:"price_per_hour" binding:"omitempty,min=0"`
	Description   *string  `json:"description"`
	IsActive      *bool    `json:"is_active"`
}
