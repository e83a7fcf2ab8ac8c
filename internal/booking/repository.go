package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pkg/timeslot"
)

type Repository interface {
	// Create persists the booking, its equipment lines and the stock
	// decrements in one transaction. A concurrent claim of the same
	// (court, date, start) slot surfaces as ErrTimeConflict; an oversold
	// line surfaces as equipment.ErrInsufficientStock. Either way nothing
	// is committed.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// CancelConfirmed flips a confirmed booking to cancelled and restores
	// its equipment stock in one transaction. It reports false without
	// error when the booking exists but is not in confirmed state.
	CancelConfirmed(ctx context.Context, id string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	pricingJSON, err := json.Marshal(b.Pricing)
	if err != nil {
		return fmt.Errorf("marshal pricing snapshot failed: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertBooking = `
		INSERT INTO public.bookings
			(customer_name, customer_email, customer_phone, court_id, booking_date,
			 start_time, end_time, duration_hours, coach_id, pricing, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertBooking,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.CourtID, b.Date,
		b.Slot.Start.String(), b.Slot.End.String(), b.Duration, b.CoachID,
		pricingJSON, b.Status, b.Notes).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// The partial unique index on (court_id, booking_date, start_time)
			// makes slot claiming atomic: a concurrent writer got here first.
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	const insertLine = `
		INSERT INTO public.booking_equipment (booking_id, equipment_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
	`
	for _, line := range b.Equipment {
		if _, err := tx.Exec(ctx, insertLine, b.ID, line.EquipmentID, line.Quantity, line.PricePerHour); err != nil {
			return fmt.Errorf("create booking line failed: %w", err)
		}
		if err := equipment.ReserveStock(ctx, tx, line.EquipmentID, line.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	b.id, b.customer_name, b.customer_email, b.customer_phone,
	b.court_id, c.name, b.booking_date, b.start_time, b.end_time, b.duration_hours,
	b.coach_id, co.name, b.pricing, b.status, b.notes, b.created_at, b.updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var start, end string
	var pricingJSON []byte

	if err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.CourtID, &b.CourtName, &b.Date, &start, &end, &b.Duration,
		&b.CoachID, &b.CoachName, &pricingJSON, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	slot, err := timeslot.ParseRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("stored booking has invalid times: %w", err)
	}
	b.Slot = slot

	if err := json.Unmarshal(pricingJSON, &b.Pricing); err != nil {
		return nil, fmt.Errorf("unmarshal pricing snapshot failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.courts c ON b.court_id = c.id
		LEFT JOIN public.coaches co ON b.coach_id = co.id
		WHERE b.id = $1
	`
	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	if err := r.loadLines(ctx, []*Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.customer_name", "b.customer_email", "b.customer_phone",
		"b.court_id", "c.name", "b.booking_date", "b.start_time", "b.end_time", "b.duration_hours",
		"b.coach_id", "co.name", "b.pricing", "b.status", "b.notes", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id").
		LeftJoin("public.coaches co ON b.coach_id = co.id")

	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.CoachID != "" {
		query = query.Where(squirrel.Eq{"b.coach_id": filter.CoachID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.Date != nil {
		query = query.Where(squirrel.Eq{"b.booking_date": *filter.Date})
	}

	query = query.OrderBy("b.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		var start, end string
		var pricingJSON []byte
		if err := rows.Scan(
			&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
			&b.CourtID, &b.CourtName, &b.Date, &start, &end, &b.Duration,
			&b.CoachID, &b.CoachName, &pricingJSON, &b.Status, &b.Notes,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		slot, err := timeslot.ParseRange(start, end)
		if err != nil {
			return nil, 0, fmt.Errorf("stored booking has invalid times: %w", err)
		}
		b.Slot = slot
		if err := json.Unmarshal(pricingJSON, &b.Pricing); err != nil {
			return nil, 0, fmt.Errorf("unmarshal pricing snapshot failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := r.loadLines(ctx, bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// loadLines fetches the equipment lines for a batch of bookings.
func (r *pgxRepository) loadLines(ctx context.Context, bookings []*Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, len(bookings))
	byID := make(map[string]*Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Equipment = []Line{}
	}

	const query = `
		SELECT be.booking_id, be.equipment_id, e.name, be.quantity, be.unit_price
		FROM public.booking_equipment be
		JOIN public.equipment e ON be.equipment_id = e.id
		WHERE be.booking_id = ANY($1)
		ORDER BY e.name ASC
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list booking equipment failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID string
		var line Line
		if err := rows.Scan(&bookingID, &line.EquipmentID, &line.EquipmentName, &line.Quantity, &line.PricePerHour); err != nil {
			return fmt.Errorf("scan booking equipment failed: %w", err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Equipment = append(b.Equipment, line)
		}
	}
	return nil
}

func (r *pgxRepository) CancelConfirmed(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin cancel booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status guard makes cancellation idempotent: a repeat cancel
	// matches zero rows and never restores stock twice.
	const cancel = `
		UPDATE public.bookings
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'confirmed'
	`
	ct, err := tx.Exec(ctx, cancel, id)
	if err != nil {
		return false, fmt.Errorf("cancel booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return false, nil
	}

	const lines = `
		SELECT equipment_id, quantity
		FROM public.booking_equipment
		WHERE booking_id = $1
	`
	rows, err := tx.Query(ctx, lines, id)
	if err != nil {
		return false, fmt.Errorf("list booking equipment failed: %w", err)
	}

	type restore struct {
		equipmentID string
		quantity    int
	}
	var restores []restore
	for rows.Next() {
		var rs restore
		if err := rows.Scan(&rs.equipmentID, &rs.quantity); err != nil {
			rows.Close()
			return false, fmt.Errorf("scan booking equipment failed: %w", err)
		}
		restores = append(restores, rs)
	}
	rows.Close()

	for _, rs := range restores {
		if err := equipment.RestoreStock(ctx, tx, rs.equipmentID, rs.quantity); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit cancel booking failed: %w", err)
	}
	return true, nil
}
