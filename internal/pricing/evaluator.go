package pricing

import (
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// Context is the booking context a rule condition is evaluated against.
type Context struct {
	Date      time.Time
	Start     timeslot.Clock
	CourtType court.Type
}

// Matches reports whether the rule's condition holds for the context.
// Pure function: no side effects, no I/O. A rule with malformed or missing
// conditions never matches.
func Matches(r *Rule, ctx Context) bool {
	switch r.Type {
	case RulePeakHours:
		// Hour granularity only: minutes in the condition are ignored and
		// the booking start hour is tested against the half-open hour range.
		if r.Conditions.StartTime == nil || r.Conditions.EndTime == nil {
			return false
		}
		h := ctx.Start.Hour()
		return h >= r.Conditions.StartTime.Hour() && h < r.Conditions.EndTime.Hour()

	case RuleWeekend:
		day := int(ctx.Date.Weekday())
		for _, d := range r.Conditions.Days {
			if d == day {
				return true
			}
		}
		return false

	case RuleCourtType:
		return r.Conditions.CourtType != nil && *r.Conditions.CourtType == ctx.CourtType

	case RuleSeasonal:
		// Inclusive calendar-day range. ISO dates compare correctly as
		// strings, which sidesteps time zone handling entirely.
		if r.Conditions.StartDate == nil || r.Conditions.EndDate == nil {
			return false
		}
		d := ctx.Date.Format(DateLayout)
		return d >= *r.Conditions.StartDate && d <= *r.Conditions.EndDate
	}

	return false
}
