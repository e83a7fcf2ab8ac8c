package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

func clock(t *testing.T, s string) timeslot.Clock {
	t.Helper()
	c, err := timeslot.Parse(s)
	require.NoError(t, err)
	return c
}

func clockPtr(t *testing.T, s string) *timeslot.Clock {
	t.Helper()
	c := clock(t, s)
	return &c
}

func strPtr(s string) *string { return &s }

func typePtr(ct court.Type) *court.Type { return &ct }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestMatchesPeakHours(t *testing.T) {
	rule := &Rule{
		Type: RulePeakHours,
		Conditions: Conditions{
			StartTime: clockPtr(t, "18:00"),
			EndTime:   clockPtr(t, "21:00"),
		},
	}

	cases := []struct {
		name  string
		start string
		want  bool
	}{
		{"before window", "17:00", false},
		{"window start", "18:00", true},
		{"inside window", "20:00", true},
		{"window end is exclusive", "21:00", false},
		{"minutes ignored, hour inside", "18:30", true},
		{"minutes ignored, hour at end", "21:30", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{Date: mustDate(t, "2026-03-02"), Start: clock(t, tc.start)}
			assert.Equal(t, tc.want, Matches(rule, ctx))
		})
	}

	t.Run("missing times never match", func(t *testing.T) {
		bad := &Rule{Type: RulePeakHours}
		ctx := Context{Date: mustDate(t, "2026-03-02"), Start: clock(t, "19:00")}
		assert.False(t, Matches(bad, ctx))
	})
}

func TestMatchesWeekend(t *testing.T) {
	rule := &Rule{
		Type:       RuleWeekend,
		Conditions: Conditions{Days: []int{0, 6}},
	}

	cases := []struct {
		name string
		date string // 2026-03-01 is a Sunday
		want bool
	}{
		{"sunday", "2026-03-01", true},
		{"monday", "2026-03-02", false},
		{"friday", "2026-03-06", false},
		{"saturday", "2026-03-07", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{Date: mustDate(t, tc.date), Start: clock(t, "10:00")}
			assert.Equal(t, tc.want, Matches(rule, ctx))
		})
	}

	t.Run("empty day set never matches", func(t *testing.T) {
		bad := &Rule{Type: RuleWeekend}
		ctx := Context{Date: mustDate(t, "2026-03-07"), Start: clock(t, "10:00")}
		assert.False(t, Matches(bad, ctx))
	})
}

func TestMatchesCourtType(t *testing.T) {
	rule := &Rule{
		Type:       RuleCourtType,
		Conditions: Conditions{CourtType: typePtr(court.TypeIndoor)},
	}

	ctx := Context{Date: mustDate(t, "2026-03-02"), Start: clock(t, "10:00")}

	ctx.CourtType = court.TypeIndoor
	assert.True(t, Matches(rule, ctx))

	ctx.CourtType = court.TypeOutdoor
	assert.False(t, Matches(rule, ctx))

	t.Run("missing court type never matches", func(t *testing.T) {
		bad := &Rule{Type: RuleCourtType}
		assert.False(t, Matches(bad, ctx))
	})
}

func TestMatchesSeasonal(t *testing.T) {
	rule := &Rule{
		Type: RuleSeasonal,
		Conditions: Conditions{
			StartDate: strPtr("2026-06-01"),
			EndDate:   strPtr("2026-08-31"),
		},
	}

	cases := []struct {
		name string
		date string
		want bool
	}{
		{"day before season", "2026-05-31", false},
		{"first day inclusive", "2026-06-01", true},
		{"mid season", "2026-07-15", true},
		{"last day inclusive", "2026-08-31", true},
		{"day after season", "2026-09-01", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{Date: mustDate(t, tc.date), Start: clock(t, "10:00")}
			assert.Equal(t, tc.want, Matches(rule, ctx))
		})
	}

	t.Run("missing range never matches", func(t *testing.T) {
		bad := &Rule{Type: RuleSeasonal}
		ctx := Context{Date: mustDate(t, "2026-07-15"), Start: clock(t, "10:00")}
		assert.False(t, Matches(bad, ctx))
	})
}

func TestSortRules(t *testing.T) {
	rules := []*Rule{
		{Name: "bravo", Priority: 1},
		{Name: "alpha", Priority: 1},
		{Name: "charlie", Priority: 5},
	}

	SortRules(rules)

	require.Len(t, rules, 3)
	assert.Equal(t, "charlie", rules[0].Name)
	assert.Equal(t, "alpha", rules[1].Name)
	assert.Equal(t, "bravo", rules[2].Name)
}
