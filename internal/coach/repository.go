package coach

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
)

type Repository interface {
	Create(ctx context.Context, c *Coach) error
	GetByID(ctx context.Context, id string) (*Coach, error)
	List(ctx context.Context, filter Filter) ([]*Coach, int, error)
	Update(ctx context.Context, c *Coach) error
	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Coach) error {
	windows, err := json.Marshal(c.Availability)
	if err != nil {
		return fmt.Errorf("marshal coach availability failed: %w", err)
	}

	const query = `
		INSERT INTO public.coaches (name, email, phone, hourly_rate, specialization, availability, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, updated_at
	`
	err = r.pool.QueryRow(ctx, query,
		c.Name, c.Email, c.Phone, c.HourlyRate, c.Specialization, windows, c.Bio).
		Scan(&c.ID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("create coach failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) scanCoach(row pgx.Row) (*Coach, error) {
	var c Coach
	var windowsJSON []byte

	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.HourlyRate,
		&c.Specialization, &windowsJSON, &c.Bio, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(windowsJSON, &c.Availability); err != nil {
		return nil, fmt.Errorf("unmarshal coach availability failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Coach, error) {
	const query = `
		SELECT id, name, email, phone, hourly_rate, specialization, availability, bio, is_active, created_at, updated_at
		FROM public.coaches
		WHERE id = $1
	`
	c, err := r.scanCoach(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get coach failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Coach, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "email", "phone", "hourly_rate", "specialization",
		"availability", "bio", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.coaches")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
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
		return nil, 0, fmt.Errorf("build list coaches query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list coaches failed: %w", err)
	}
	defer rows.Close()

	var coaches []*Coach
	var total int

	for rows.Next() {
		var c Coach
		var windowsJSON []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.HourlyRate, &c.Specialization,
			&windowsJSON, &c.Bio, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan coach failed: %w", err)
		}
		if err := json.Unmarshal(windowsJSON, &c.Availability); err != nil {
			return nil, 0, fmt.Errorf("unmarshal coach availability failed: %w", err)
		}
		coaches = append(coaches, &c)
	}

	return coaches, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Coach) error {
	windows, err := json.Marshal(c.Availability)
	if err != nil {
		return fmt.Errorf("marshal coach availability failed: %w", err)
	}

	const query = `
		UPDATE public.coaches
		SET name = $1, email = $2, phone = $3, hourly_rate = $4, specialization = $5,
		    availability = $6, bio = $7, is_active = $8, updated_at = now()
		WHERE id = $9
	`
	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.Email, c.Phone, c.HourlyRate, c.Specialization,
		windows, c.Bio, c.IsActive, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("update coach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
		UPDATE public.coaches
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate coach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
