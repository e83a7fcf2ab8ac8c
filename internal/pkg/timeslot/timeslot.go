// Package timeslot holds the wall-clock time type used across the booking
// engine. All booking times are "HH:MM" strings on a single calendar day;
// internally they are minutes since midnight so interval math stays integer.
package timeslot

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Booking day bounds: hourly slots run 09:00-22:00.
const (
	DayOpenHour  = 9
	DayCloseHour = 22
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// Parse parses a "HH:MM" 24-hour string into a Clock.
func Parse(s string) (Clock, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return Clock(h*60 + m), nil
}

// MustParse is Parse for compile-time-known values; it panics on error.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalJSON encodes the clock as its "HH:MM" string form.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the "HH:MM" string form.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Range is a half-open [Start, End) interval within one day.
type Range struct {
	Start Clock
	End   Clock
}

// NewRange builds a Range, rejecting zero or negative durations. Requests
// spanning midnight cannot be expressed and fail here.
func NewRange(start, end Clock) (Range, error) {
	if end <= start {
		return Range{}, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses "HH:MM" start and end strings into a Range.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e)
}

// Hours returns the duration in fractional hours.
func (r Range) Hours() float64 {
	return float64(r.End-r.Start) / 60.0
}

// Overlaps reports whether two half-open intervals intersect. This is the
// single overlap predicate used by both the availability checker and the
// slot grid.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && r.End > other.Start
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Slots returns the fixed catalog of bookable one-hour slots for a day.
func Slots() []Range {
	slots := make([]Range, 0, DayCloseHour-DayOpenHour)
	for h := DayOpenHour; h < DayCloseHour; h++ {
		slots = append(slots, Range{Start: Clock(h * 60), End: Clock((h + 1) * 60)})
	}
	return slots
}
