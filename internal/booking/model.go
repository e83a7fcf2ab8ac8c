package booking

import (
	"net/http"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

// DateLayout is the calendar-day format used on the wire and in storage.
const DateLayout = "2006-01-02"

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "customer name is required")
	ErrInvalidEmail     = apperror.New(http.StatusBadRequest, "customer email is not valid")
	ErrCannotCancel     = apperror.New(http.StatusConflict, "completed bookings cannot be cancelled")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusCompleted
}

// Line is one reserved equipment item on a booking. PricePerHour is the
// unit price frozen at creation time.
type Line struct {
	EquipmentID   string
	EquipmentName string
	Quantity      int
	PricePerHour  float64
}

// Booking is a confirmed court reservation. The pricing breakdown is a
// snapshot taken at creation; it is never recomputed, even if rules change.
// Bookings are never deleted: cancellation flips status and restores
// equipment stock.
type Booking struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CourtID       string
	CourtName     string
	Date          time.Time
	Slot          timeslot.Range
	Duration      float64
	Equipment     []Line
	CoachID       *string
	CoachName     *string
	Pricing       pricing.Breakdown
	Status        Status
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CourtID  string
	CoachID  string
	Status   string
	Date     *time.Time
	Page     int
	PageSize int
}
