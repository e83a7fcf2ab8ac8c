package coach

import (
	"net/http"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "coach not found")
	ErrEmailTaken    = apperror.New(http.StatusConflict, "coach email already in use")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidEmail  = apperror.New(http.StatusBadRequest, "email is not valid")
	ErrInvalidRate   = apperror.New(http.StatusBadRequest, "hourly rate cannot be negative")
	ErrInvalidWindow = apperror.New(http.StatusBadRequest, "availability window is not valid")
)

// Window is one recurring weekly availability slot. Windows are stored as a
// JSONB array on the coach row; overlapping windows are allowed.
type Window struct {
	DayOfWeek int            `json:"day_of_week"` // 0=Sunday ... 6=Saturday
	Start     timeslot.Clock `json:"start_time"`
	End       timeslot.Clock `json:"end_time"`
}

// Range returns the window as a timeslot.Range.
func (w Window) Range() timeslot.Range {
	return timeslot.Range{Start: w.Start, End: w.End}
}

// Coach is a bookable trainer with a weekly recurring calendar.
type Coach struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	HourlyRate     float64
	Specialization []string
	Availability   []Window
	Bio            string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Covers reports whether the requested range fits entirely inside at least
// one recurring window for the given weekday (0=Sunday).
func (c *Coach) Covers(dayOfWeek int, r timeslot.Range) bool {
	for _, w := range c.Availability {
		if w.DayOfWeek == dayOfWeek && w.Range().Contains(r) {
			return true
		}
	}
	return false
}

// Filter defines parameters for listing coaches.
type Filter struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
