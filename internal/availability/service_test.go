package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

type fakeRepository struct {
	booked []BookedSlot // court bookings, keyed by CourtID
	coach  []timeslot.Range
}

func (f *fakeRepository) CourtHasOverlap(_ context.Context, courtID string, _ time.Time, slot timeslot.Range) (bool, error) {
	for _, b := range f.booked {
		if b.CourtID == courtID && slot.Overlaps(b.Slot) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) CoachHasOverlap(_ context.Context, _ string, _ time.Time, slot timeslot.Range) (bool, error) {
	for _, b := range f.coach {
		if slot.Overlaps(b) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) BookedSlotsForDate(_ context.Context, _ time.Time) ([]BookedSlot, error) {
	return f.booked, nil
}

type fakeCourts struct {
	courts []*court.Court
}

func (f *fakeCourts) List(_ context.Context, _ court.Filter) ([]*court.Court, int, error) {
	return f.courts, len(f.courts), nil
}

type fakeCoaches struct {
	coaches map[string]*coach.Coach
}

func (f *fakeCoaches) GetByID(_ context.Context, id string) (*coach.Coach, error) {
	if c, ok := f.coaches[id]; ok {
		return c, nil
	}
	return nil, coach.ErrNotFound
}

type fakeEquipment struct {
	items map[string]*equipment.Equipment
}

func (f *fakeEquipment) GetByID(_ context.Context, id string) (*equipment.Equipment, error) {
	if e, ok := f.items[id]; ok {
		return e, nil
	}
	return nil, equipment.ErrNotFound
}

func rng(t *testing.T, start, end string) timeslot.Range {
	t.Helper()
	r, err := timeslot.ParseRange(start, end)
	require.NoError(t, err)
	return r
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func newTestService(repo *fakeRepository, courts *fakeCourts, coaches *fakeCoaches, equip *fakeEquipment) Service {
	if repo == nil {
		repo = &fakeRepository{}
	}
	if courts == nil {
		courts = &fakeCourts{}
	}
	if coaches == nil {
		coaches = &fakeCoaches{}
	}
	if equip == nil {
		equip = &fakeEquipment{}
	}
	return NewService(repo, courts, coaches, equip, nil)
}

func TestCheckCourtOverlap(t *testing.T) {
	// 2026-03-02 is a Monday.
	date := mustDate(t, "2026-03-02")
	repo := &fakeRepository{
		booked: []BookedSlot{{CourtID: "court-1", Slot: rng(t, "10:00", "12:00")}},
	}
	svc := newTestService(repo, nil, nil, nil)

	cases := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"same interval", "10:00", "12:00", false},
		{"starts inside", "11:00", "13:00", false},
		{"ends inside", "09:00", "11:00", false},
		{"contains existing", "09:00", "13:00", false},
		{"contained by existing", "10:30", "11:30", false},
		{"ends where existing starts", "09:00", "10:00", true},
		{"starts where existing ends", "12:00", "13:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Check(context.Background(), CheckRequest{
				Date:    date,
				Slot:    rng(t, tc.start, tc.end),
				CourtID: "court-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.CourtAvailable)
			assert.Equal(t, tc.want, result.Available)
		})
	}

	t.Run("other court unaffected", func(t *testing.T) {
		result, err := svc.Check(context.Background(), CheckRequest{
			Date:    date,
			Slot:    rng(t, "10:00", "12:00"),
			CourtID: "court-2",
		})
		require.NoError(t, err)
		assert.True(t, result.Available)
	})
}

func TestCheckCoach(t *testing.T) {
	date := mustDate(t, "2026-03-02") // Monday
	monday := coach.Window{DayOfWeek: 1, Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}
	coaches := &fakeCoaches{coaches: map[string]*coach.Coach{
		"coach-1": {ID: "coach-1", Name: "Alex", Availability: []coach.Window{monday}, IsActive: true},
	}}

	t.Run("inside window", func(t *testing.T) {
		svc := newTestService(nil, nil, coaches, nil)
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "10:00", "12:00"), CoachID: "coach-1",
		})
		require.NoError(t, err)
		assert.True(t, result.CoachAvailable)
	})

	t.Run("extends past window", func(t *testing.T) {
		svc := newTestService(nil, nil, coaches, nil)
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "16:00", "18:00"), CoachID: "coach-1",
		})
		require.NoError(t, err)
		assert.False(t, result.CoachAvailable)
		assert.Equal(t, "coach is not available at this time", result.CoachReason)
	})

	t.Run("wrong weekday", func(t *testing.T) {
		svc := newTestService(nil, nil, coaches, nil)
		sunday := mustDate(t, "2026-03-01")
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: sunday, Slot: rng(t, "10:00", "12:00"), CoachID: "coach-1",
		})
		require.NoError(t, err)
		assert.False(t, result.CoachAvailable)
	})

	t.Run("already booked", func(t *testing.T) {
		repo := &fakeRepository{coach: []timeslot.Range{rng(t, "10:00", "12:00")}}
		svc := newTestService(repo, nil, coaches, nil)
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "11:00", "13:00"), CoachID: "coach-1",
		})
		require.NoError(t, err)
		assert.False(t, result.CoachAvailable)
		assert.Equal(t, "coach is already booked for this time", result.CoachReason)
	})

	t.Run("unknown coach is a reason, not an error", func(t *testing.T) {
		svc := newTestService(nil, nil, coaches, nil)
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "10:00", "12:00"), CoachID: "missing",
		})
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, "coach not found", result.CoachReason)
	})
}

func TestCheckEquipment(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	equip := &fakeEquipment{items: map[string]*equipment.Equipment{
		"racket": {ID: "racket", AvailableQuantity: 3, IsActive: true},
	}}
	svc := newTestService(nil, nil, nil, equip)

	t.Run("enough stock", func(t *testing.T) {
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "10:00", "11:00"),
			Equipment: []equipment.Selection{{EquipmentID: "racket", Quantity: 2}},
		})
		require.NoError(t, err)
		assert.True(t, result.Available)
		require.Len(t, result.EquipmentStatus, 1)
		assert.Equal(t, 3, result.EquipmentStatus[0].AvailableQuantity)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "10:00", "11:00"),
			Equipment: []equipment.Selection{{EquipmentID: "racket", Quantity: 5}},
		})
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.False(t, result.EquipmentAvailable)
		require.Len(t, result.EquipmentStatus, 1)
		assert.Equal(t, "only 3 available, requested 5", result.EquipmentStatus[0].Reason)
	})

	t.Run("unknown equipment is a reason, not an error", func(t *testing.T) {
		result, err := svc.Check(context.Background(), CheckRequest{
			Date: date, Slot: rng(t, "10:00", "11:00"),
			Equipment: []equipment.Selection{{EquipmentID: "missing", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, "equipment not found", result.EquipmentStatus[0].Reason)
	})
}

func TestSlotsForDate(t *testing.T) {
	date := mustDate(t, "2026-03-02")
	courts := &fakeCourts{courts: []*court.Court{
		{ID: "court-1", Name: "Center Court", Type: court.TypeIndoor, BasePrice: 20, IsActive: true},
		{ID: "court-2", Name: "Back Court", Type: court.TypeOutdoor, BasePrice: 15, IsActive: true},
	}}
	repo := &fakeRepository{
		// A booking off the hourly grid still blocks both slots it touches.
		booked: []BookedSlot{{CourtID: "court-1", Slot: rng(t, "09:30", "11:00")}},
	}
	svc := newTestService(repo, courts, nil, nil)

	grid, err := svc.SlotsForDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, grid, 2)

	require.Len(t, grid[0].Slots, 13)
	assert.Equal(t, "Center Court", grid[0].Court.Name)
	assert.Equal(t, "09:00", grid[0].Slots[0].StartTime.String())
	assert.False(t, grid[0].Slots[0].Available) // 09:00-10:00 overlaps 09:30-11:00
	assert.False(t, grid[0].Slots[1].Available) // 10:00-11:00 overlaps
	assert.True(t, grid[0].Slots[2].Available)  // 11:00-12:00 does not
	assert.Equal(t, "21:00", grid[0].Slots[12].StartTime.String())
	assert.Equal(t, "22:00", grid[0].Slots[12].EndTime.String())

	for _, s := range grid[1].Slots {
		assert.True(t, s.Available)
	}
}

func mustClock(t *testing.T, s string) timeslot.Clock {
	t.Helper()
	c, err := timeslot.Parse(s)
	require.NoError(t, err)
	return c
}
