package equipment

import (
	"net/http"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "equipment not found")
	ErrNameTaken         = apperror.New(http.StatusConflict, "equipment name already in use")
	ErrEmptyName         = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCategory   = apperror.New(http.StatusBadRequest, "category must be racket, shoes or other")
	ErrInvalidQuantity   = apperror.New(http.StatusBadRequest, "quantity cannot be negative")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "price per hour cannot be negative")
	ErrInsufficientStock = apperror.New(http.StatusConflict, "not enough equipment available")
)

type Category string

const (
	CategoryRacket Category = "racket"
	CategoryShoes  Category = "shoes"
	CategoryOther  Category = "other"
)

func (c Category) Valid() bool {
	return c == CategoryRacket || c == CategoryShoes || c == CategoryOther
}

// Equipment is a rentable item tracked by a global availability counter.
// The counter is a point-in-time stock level, not a per-slot reservation:
// a unit rented for an afternoon slot counts as out for the whole day
// until the booking is cancelled.
type Equipment struct {
	ID                string
	Name              string
	Category          Category
	TotalQuantity     int
	AvailableQuantity int
	PricePerHour      float64
	Description       string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Selection is a requested (equipment, quantity) pair on a booking.
type Selection struct {
	EquipmentID string
	Quantity    int
}

// Filter defines parameters for listing equipment.
type Filter struct {
	ActiveOnly bool
	Category   string
	Page       int
	PageSize   int
}
