package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

// Repository reads booking intervals for overlap testing. Booking times are
// stored as zero-padded "HH:MM" text, so text comparison is chronological.
type Repository interface {
	// CourtHasOverlap reports whether any non-cancelled booking on the court
	// for the date intersects the requested interval.
	CourtHasOverlap(ctx context.Context, courtID string, date time.Time, slot timeslot.Range) (bool, error)

	// CoachHasOverlap is the same test against the coach's bookings.
	CoachHasOverlap(ctx context.Context, coachID string, date time.Time, slot timeslot.Range) (bool, error)

	// BookedSlotsForDate returns every non-cancelled booking interval on the
	// date, for the slot grid.
	BookedSlotsForDate(ctx context.Context, date time.Time) ([]BookedSlot, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// The three-clause conflict test from the booking rules (existing covers
// requested start, existing covers requested end, existing contained in
// requested) reduces to the standard half-open overlap predicate.
func (r *pgxRepository) hasOverlap(ctx context.Context, column, id string, date time.Time, slot timeslot.Range) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE %s = $1
			  AND booking_date = $2
			  AND status <> 'cancelled'
			  AND start_time < $3
			  AND end_time > $4
		)
	`, column)

	var exists bool
	err := r.pool.QueryRow(ctx, query, id, date, slot.End.String(), slot.Start.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CourtHasOverlap(ctx context.Context, courtID string, date time.Time, slot timeslot.Range) (bool, error) {
	return r.hasOverlap(ctx, "court_id", courtID, date, slot)
}

func (r *pgxRepository) CoachHasOverlap(ctx context.Context, coachID string, date time.Time, slot timeslot.Range) (bool, error) {
	return r.hasOverlap(ctx, "coach_id", coachID, date, slot)
}

func (r *pgxRepository) BookedSlotsForDate(ctx context.Context, date time.Time) ([]BookedSlot, error) {
	const query = `
		SELECT court_id, start_time, end_time
		FROM public.bookings
		WHERE booking_date = $1 AND status <> 'cancelled'
	`
	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("list booked slots failed: %w", err)
	}
	defer rows.Close()

	var booked []BookedSlot
	for rows.Next() {
		var courtID, start, end string
		if err := rows.Scan(&courtID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan booked slot failed: %w", err)
		}
		slot, err := timeslot.ParseRange(start, end)
		if err != nil {
			return nil, fmt.Errorf("stored booking has invalid times: %w", err)
		}
		booked = append(booked, BookedSlot{CourtID: courtID, Slot: slot})
	}
	return booked, nil
}
