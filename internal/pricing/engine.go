package pricing

import (
	"math"
	"time"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// QuoteInput is a fully resolved pricing request.
type QuoteInput struct {
	Court     *court.Court
	Date      time.Time
	Slot      timeslot.Range
	Equipment []LineItem
	Coach     *coach.Coach // nil when no coach is booked
	Rules     []*Rule      // active rules; sorted in place before applying
}

// Calculate computes the itemized price for a booking. Pure computation:
// references must be resolved and rules loaded by the caller.
//
// Court price is base price x duration, then multiplied by every matching
// rule in priority order (compounding). Equipment contributes unit price x
// quantity x duration per line; coach contributes hourly rate x duration.
func Calculate(in QuoteInput) Breakdown {
	duration := in.Slot.Hours()

	courtPrice := in.Court.BasePrice * duration

	SortRules(in.Rules)
	ctx := Context{Date: in.Date, Start: in.Slot.Start, CourtType: in.Court.Type}

	applied := make([]AppliedRule, 0)
	for _, r := range in.Rules {
		if !Matches(r, ctx) {
			continue
		}
		courtPrice *= r.Multiplier
		applied = append(applied, AppliedRule{RuleName: r.Name, Multiplier: r.Multiplier})
	}

	var equipmentPrice float64
	for _, line := range in.Equipment {
		equipmentPrice += line.PricePerHour * float64(line.Quantity) * duration
	}

	var coachPrice float64
	if in.Coach != nil {
		coachPrice = in.Coach.HourlyRate * duration
	}

	return Breakdown{
		CourtPrice:     round2(courtPrice),
		EquipmentPrice: round2(equipmentPrice),
		CoachPrice:     round2(coachPrice),
		TotalPrice:     round2(courtPrice + equipmentPrice + coachPrice),
		AppliedRules:   applied,
	}
}

// round2 rounds half-up to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
