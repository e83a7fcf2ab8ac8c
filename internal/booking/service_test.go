package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courtreserve/court-reserve-backend/internal/availability"
	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/apperror"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

type fakeRepository struct {
	bookings  map[string]*Booking
	createErr error
	nextID    int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: map[string]*Booking{}}
}

func (f *fakeRepository) Create(_ context.Context, b *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = string(rune('a' + f.nextID - 1))
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeRepository) CancelConfirmed(_ context.Context, id string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status != StatusConfirmed {
		return false, nil
	}
	b.Status = StatusCancelled
	return true, nil
}

type fakeAvailability struct {
	result      *availability.Result
	invalidated []time.Time
}

func (f *fakeAvailability) Check(_ context.Context, _ availability.CheckRequest) (*availability.Result, error) {
	return f.result, nil
}

func (f *fakeAvailability) SlotsForDate(_ context.Context, _ time.Time) ([]availability.CourtSlots, error) {
	return nil, nil
}

func (f *fakeAvailability) InvalidateDate(_ context.Context, date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type fakePricing struct {
	pricing.Service
	quote *pricing.Quote
	err   error
}

func (f *fakePricing) Quote(_ context.Context, _ pricing.QuoteRequest) (*pricing.Quote, error) {
	return f.quote, f.err
}

func availableResult() *availability.Result {
	return &availability.Result{
		Available:          true,
		CourtAvailable:     true,
		CoachAvailable:     true,
		EquipmentAvailable: true,
	}
}

func testQuote() *pricing.Quote {
	return &pricing.Quote{
		Court: &court.Court{ID: "court-1", Name: "Center Court", Type: court.TypeIndoor, BasePrice: 20, IsActive: true},
		Lines: []pricing.LineItem{
			{EquipmentID: "racket", Name: "Pro Racket", Quantity: 2, PricePerHour: 5},
		},
		Breakdown: pricing.Breakdown{
			CourtPrice:     40,
			EquipmentPrice: 20,
			TotalPrice:     60,
			AppliedRules:   []pricing.AppliedRule{},
		},
	}
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

func validCreateRequest(t *testing.T) CreateRequest {
	t.Helper()
	return CreateRequest{
		CustomerName:  "Jamie Lin",
		CustomerEmail: "Jamie@Example.com",
		CourtID:       "court-1",
		Date:          mustDate(t, "2026-03-02"),
		Slot:          rng(t, "10:00", "12:00"),
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepository()
	avail := &fakeAvailability{result: availableResult()}
	svc := NewService(repo, avail, &fakePricing{quote: testQuote()}, zap.NewNop())

	created, err := svc.Create(context.Background(), validCreateRequest(t))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, StatusConfirmed, created.Status)
	assert.Equal(t, "jamie@example.com", created.CustomerEmail)
	assert.Equal(t, "Center Court", created.CourtName)
	assert.Equal(t, 2.0, created.Duration)
	assert.Equal(t, 60.0, created.Pricing.TotalPrice)
	require.Len(t, created.Equipment, 1)
	assert.Equal(t, "Pro Racket", created.Equipment[0].EquipmentName)

	// Slot grid cache for the date must be dropped.
	require.Len(t, avail.invalidated, 1)
	assert.Equal(t, created.Date, avail.invalidated[0])
}

func TestCreateBookingValidation(t *testing.T) {
	svc := NewService(newFakeRepository(), &fakeAvailability{result: availableResult()}, &fakePricing{quote: testQuote()}, zap.NewNop())

	t.Run("empty name", func(t *testing.T) {
		req := validCreateRequest(t)
		req.CustomerName = "   "
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("bad email", func(t *testing.T) {
		req := validCreateRequest(t)
		req.CustomerEmail = "not-an-email"
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("empty time range", func(t *testing.T) {
		req := validCreateRequest(t)
		req.Slot = timeslot.Range{}
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("inverted time range", func(t *testing.T) {
		req := validCreateRequest(t)
		req.Slot = timeslot.Range{Start: req.Slot.End, End: req.Slot.Start}
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestCreateBookingUnknownCoach(t *testing.T) {
	// Unknown references resolve through the pricing quote, so they come
	// back as 404s rather than availability conflicts.
	svc := NewService(newFakeRepository(), &fakeAvailability{result: availableResult()}, &fakePricing{err: coach.ErrNotFound}, zap.NewNop())

	req := validCreateRequest(t)
	coachID := "missing"
	req.CoachID = &coachID

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, coach.ErrNotFound)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateBookingUnavailable(t *testing.T) {
	result := availableResult()
	result.Available = false
	result.CourtAvailable = false
	result.CourtReason = "court is already booked for this time"

	svc := NewService(newFakeRepository(), &fakeAvailability{result: result}, &fakePricing{quote: testQuote()}, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest(t))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, "court is already booked for this time", appErr.Message)
}

func TestCreateBookingConflictFromRepo(t *testing.T) {
	// The availability check passed but another writer claimed the slot
	// before the insert committed.
	repo := newFakeRepository()
	repo.createErr = ErrTimeConflict
	svc := NewService(repo, &fakeAvailability{result: availableResult()}, &fakePricing{quote: testQuote()}, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateRequest(t))
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCancelBooking(t *testing.T) {
	t.Run("confirmed bookings cancel", func(t *testing.T) {
		repo := newFakeRepository()
		avail := &fakeAvailability{result: availableResult()}
		svc := NewService(repo, avail, &fakePricing{quote: testQuote()}, zap.NewNop())

		created, err := svc.Create(context.Background(), validCreateRequest(t))
		require.NoError(t, err)

		cancelled, err := svc.Cancel(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Len(t, avail.invalidated, 2)
	})

	t.Run("repeat cancel is a no-op", func(t *testing.T) {
		repo := newFakeRepository()
		avail := &fakeAvailability{result: availableResult()}
		svc := NewService(repo, avail, &fakePricing{quote: testQuote()}, zap.NewNop())

		created, err := svc.Create(context.Background(), validCreateRequest(t))
		require.NoError(t, err)

		_, err = svc.Cancel(context.Background(), created.ID)
		require.NoError(t, err)

		again, err := svc.Cancel(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, again.Status)
		// No second invalidation: the repeat cancel changed nothing.
		assert.Len(t, avail.invalidated, 2)
	})

	t.Run("completed bookings cannot cancel", func(t *testing.T) {
		repo := newFakeRepository()
		repo.bookings["done"] = &Booking{ID: "done", Status: StatusCompleted}
		svc := NewService(repo, &fakeAvailability{result: availableResult()}, &fakePricing{quote: testQuote()}, zap.NewNop())

		_, err := svc.Cancel(context.Background(), "done")
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc := NewService(newFakeRepository(), &fakeAvailability{result: availableResult()}, &fakePricing{quote: testQuote()}, zap.NewNop())
		_, err := svc.Cancel(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateBookingWithCoach(t *testing.T) {
	quote := testQuote()
	quote.Coach = &coach.Coach{ID: "coach-1", Name: "Alex", HourlyRate: 40, IsActive: true}
	quote.Breakdown.CoachPrice = 80
	quote.Breakdown.TotalPrice = 140

	repo := newFakeRepository()
	svc := NewService(repo, &fakeAvailability{result: availableResult()}, &fakePricing{quote: quote}, zap.NewNop())

	req := validCreateRequest(t)
	coachID := "coach-1"
	req.CoachID = &coachID

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, created.CoachID)
	assert.Equal(t, "coach-1", *created.CoachID)
	require.NotNil(t, created.CoachName)
	assert.Equal(t, "Alex", *created.CoachName)
	assert.Equal(t, 140.0, created.Pricing.TotalPrice)
}
