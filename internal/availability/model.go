package availability

import (
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// DateLayout is the calendar-day format used in availability requests.
const DateLayout = "2006-01-02"

// EquipmentStatus is the per-item outcome of an equipment check.
type EquipmentStatus struct {
	EquipmentID       string `json:"equipment_id"`
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// Result is the structured outcome of an availability check: an aggregate
// flag plus the per-dimension answers so callers can tell what failed.
type Result struct {
	Available          bool              `json:"available"`
	CourtAvailable     bool              `json:"court_available"`
	CourtReason        string            `json:"court_reason,omitempty"`
	CoachAvailable     bool              `json:"coach_available"`
	CoachReason        string            `json:"coach_reason,omitempty"`
	EquipmentAvailable bool              `json:"equipment_available"`
	EquipmentStatus    []EquipmentStatus `json:"equipment_status"`
}

// Slot is one grid cell: a fixed one-hour interval with its free/busy flag.
type Slot struct {
	StartTime timeslot.Clock `json:"start_time"`
	EndTime   timeslot.Clock `json:"end_time"`
	Available bool           `json:"available"`
}

// GridCourt is the court summary embedded in the slot grid.
type GridCourt struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      court.Type `json:"type"`
	BasePrice float64    `json:"base_price"`
}

// CourtSlots is the daily slot grid for one court.
type CourtSlots struct {
	Court GridCourt `json:"court"`
	Slots []Slot    `json:"slots"`
}

// BookedSlot is a non-cancelled booking interval on a court for a date.
type BookedSlot struct {
	CourtID string
	Slot    timeslot.Range
}
