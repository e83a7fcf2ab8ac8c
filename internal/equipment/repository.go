package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, e *Equipment) error
	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// uniqueViolation reports whether err is Postgres unique_violation (23505).
// Both Create and Update can hit the name constraint.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) Create(ctx context.Context, e *Equipment) error {
	const query = `
		INSERT INTO public.equipment (name, category, total_quantity, available_quantity, price_per_hour, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		e.Name, e.Category, e.TotalQuantity, e.AvailableQuantity, e.PricePerHour, e.Description).
		Scan(&e.ID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create equipment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Equipment, error) {
	const query = `
		SELECT id, name, category, total_quantity, available_quantity, price_per_hour, description, is_active, created_at, updated_at
		FROM public.equipment
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var e Equipment
	if err := row.Scan(
		&e.ID, &e.Name, &e.Category, &e.TotalQuantity, &e.AvailableQuantity,
		&e.PricePerHour, &e.Description, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get equipment failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "category", "total_quantity", "available_quantity",
		"price_per_hour", "description", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.equipment")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list equipment query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	var items []*Equipment
	var total int

	for rows.Next() {
		var e Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.TotalQuantity, &e.AvailableQuantity,
			&e.PricePerHour, &e.Description, &e.IsActive, &e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan equipment failed: %w", err)
		}
		items = append(items, &e)
	}

	return items, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Equipment) error {
	const query = `
		UPDATE public.equipment
		SET name = $1, category = $2, total_quantity = $3, available_quantity = $4,
		    price_per_hour = $5, description = $6, is_active = $7, updated_at = now()
		WHERE id = $8
	`
	ct, err := r.pool.Exec(ctx, query,
		e.Name, e.Category, e.TotalQuantity, e.AvailableQuantity,
		e.PricePerHour, e.Description, e.IsActive, e.ID)
	if err != nil {
		if uniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("update equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
		UPDATE public.equipment
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveStock atomically decrements available_quantity inside the caller's
// transaction. The guard keeps the counter from going negative; zero rows
// means the requested quantity is no longer available.
func ReserveStock(ctx context.Context, tx pgx.Tx, id string, quantity int) error {
	const query = `
		UPDATE public.equipment
		SET available_quantity = available_quantity - $2, updated_at = now()
		WHERE id = $1 AND available_quantity >= $2
	`
	ct, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("reserve equipment stock failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock returns previously reserved units, capped at total_quantity.
func RestoreStock(ctx context.Context, tx pgx.Tx, id string, quantity int) error {
	const query = `
		UPDATE public.equipment
		SET available_quantity = LEAST(available_quantity + $2, total_quantity), updated_at = now()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, id, quantity); err != nil {
		return fmt.Errorf("restore equipment stock failed: %w", err)
	}
	return nil
}
