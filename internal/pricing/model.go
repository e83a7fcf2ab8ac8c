package pricing

import (
	"net/http"
	"sort"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

var (
	ErrRuleNotFound      = apperror.New(http.StatusNotFound, "pricing rule not found")
	ErrRuleNameTaken     = apperror.New(http.StatusConflict, "pricing rule name already in use")
	ErrEmptyName         = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidType       = apperror.New(http.StatusBadRequest, "rule type must be peak_hours, weekend, court_type or seasonal")
	ErrInvalidMultiplier = apperror.New(http.StatusBadRequest, "multiplier must be between 0.1 and 10")
	ErrInvalidConditions = apperror.New(http.StatusBadRequest, "rule conditions do not match rule type")
	ErrCourtInactive     = apperror.New(http.StatusBadRequest, "court is not available for booking")
	ErrCoachInactive     = apperror.New(http.StatusBadRequest, "coach is not available for booking")
	ErrEquipmentInactive = apperror.New(http.StatusBadRequest, "equipment is not available for booking")
)

// DateLayout is the calendar-day format used in seasonal conditions.
const DateLayout = "2006-01-02"

type RuleType string

const (
	RulePeakHours RuleType = "peak_hours"
	RuleWeekend   RuleType = "weekend"
	RuleCourtType RuleType = "court_type"
	RuleSeasonal  RuleType = "seasonal"
)

func (t RuleType) Valid() bool {
	switch t {
	case RulePeakHours, RuleWeekend, RuleCourtType, RuleSeasonal:
		return true
	}
	return false
}

// Conditions is the type-specific match payload, stored as JSONB. Only the
// fields relevant to the rule's type are set.
type Conditions struct {
	// peak_hours: matched against the booking start hour, half-open.
	StartTime *timeslot.Clock `json:"start_time,omitempty"`
	EndTime   *timeslot.Clock `json:"end_time,omitempty"`

	// weekend: weekday set, 0=Sunday ... 6=Saturday.
	Days []int `json:"days,omitempty"`

	// court_type
	CourtType *court.Type `json:"court_type,omitempty"`

	// seasonal: inclusive calendar-day range, DateLayout format.
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// Rule is a conditional price multiplier applied to the court portion of a
// booking. Matching rules compound.
type Rule struct {
	ID         string
	Name       string
	Type       RuleType
	Conditions Conditions
	Multiplier float64
	Priority   int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SortRules orders rules for application: priority descending, name
// ascending on ties. The tie-break keeps application order deterministic
// regardless of storage order.
func SortRules(rules []*Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}

// AppliedRule records one multiplier that contributed to a quote.
type AppliedRule struct {
	RuleName   string  `json:"rule_name"`
	Multiplier float64 `json:"multiplier"`
}

// Breakdown is the itemized price for a booking. A booking stores the
// breakdown as a frozen snapshot; it is never recomputed after creation.
type Breakdown struct {
	CourtPrice     float64       `json:"court_price"`
	EquipmentPrice float64       `json:"equipment_price"`
	CoachPrice     float64       `json:"coach_price"`
	TotalPrice     float64       `json:"total_price"`
	AppliedRules   []AppliedRule `json:"applied_rules"`
}

// LineItem is a resolved equipment selection with its unit price at quote
// time.
type LineItem struct {
	EquipmentID  string  `json:"equipment_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	PricePerHour float64 `json:"price_per_hour"`
}

// Filter defines parameters for listing pricing rules.
type Filter struct {
	ActiveOnly bool
	Type       string
}
