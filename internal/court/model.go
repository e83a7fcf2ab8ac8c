package court

import (
	"net/http"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "court not found")
	ErrNameTaken    = apperror.New(http.StatusConflict, "court name already in use")
	ErrEmptyName    = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidType  = apperror.New(http.StatusBadRequest, "court type must be indoor or outdoor")
	ErrInvalidPrice = apperror.New(http.StatusBadRequest, "base price cannot be negative")
)

type Type string

const (
	TypeIndoor  Type = "indoor"
	TypeOutdoor Type = "outdoor"
)

func (t Type) Valid() bool {
	return t == TypeIndoor || t == TypeOutdoor
}

// Court represents a bookable court.
type Court struct {
	ID        string
	Name      string
	Type      Type
	BasePrice float64
	Amenities []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	ActiveOnly bool
	Type       string
	Page       int
	PageSize   int
}
