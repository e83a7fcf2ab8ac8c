package court

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
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, c *Court) error
	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	const query = `
		INSERT INTO public.courts (name, court_type, base_price, amenities)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, c.Name, c.Type, c.BasePrice, c.Amenities).
		Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	const query = `
		SELECT id, name, court_type, base_price, amenities, is_active, created_at, updated_at
		FROM public.courts
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var c Court
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.BasePrice, &c.Amenities, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "court_type", "base_price", "amenities",
		"is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.courts")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"court_type": filter.Type})
	}

	query = query.OrderBy("name ASC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Type, &c.BasePrice, &c.Amenities,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	const query = `
		UPDATE public.courts
		SET name = $1, court_type = $2, base_price = $3, amenities = $4, is_active = $5, updated_at = now()
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query, c.Name, c.Type, c.BasePrice, c.Amenities, c.IsActive, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
		UPDATE public.courts
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
