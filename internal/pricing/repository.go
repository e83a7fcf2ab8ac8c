package pricing

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
	Create(ctx context.Context, r *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context, filter Filter) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
	Deactivate(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("marshal rule conditions failed: %w", err)
	}

	const query = `
		INSERT INTO public.pricing_rules (name, rule_type, conditions, multiplier, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, updated_at
	`
	err = r.pool.QueryRow(ctx, query,
		rule.Name, rule.Type, conditions, rule.Multiplier, rule.Priority).
		Scan(&rule.ID, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRuleNameTaken
		}
		return fmt.Errorf("create pricing rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	const query = `
		SELECT id, name, rule_type, conditions, multiplier, priority, is_active, created_at, updated_at
		FROM public.pricing_rules
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var rule Rule
	var conditionsJSON []byte
	if err := row.Scan(
		&rule.ID, &rule.Name, &rule.Type, &conditionsJSON,
		&rule.Multiplier, &rule.Priority, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("get pricing rule failed: %w", err)
	}
	if err := json.Unmarshal(conditionsJSON, &rule.Conditions); err != nil {
		return nil, fmt.Errorf("unmarshal rule conditions failed: %w", err)
	}
	return &rule, nil
}

// List returns rules sorted by priority descending, name ascending — the
// same order the engine applies them in.
func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "rule_type", "conditions", "multiplier",
		"priority", "is_active", "created_at", "updated_at",
	).From("public.pricing_rules")

	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"rule_type": filter.Type})
	}

	query = query.OrderBy("priority DESC", "name ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list pricing rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var rule Rule
		var conditionsJSON []byte
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Type, &conditionsJSON,
			&rule.Multiplier, &rule.Priority, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pricing rule failed: %w", err)
		}
		if err := json.Unmarshal(conditionsJSON, &rule.Conditions); err != nil {
			return nil, fmt.Errorf("unmarshal rule conditions failed: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pgxRepository) Update(ctx context.Context, rule *Rule) error {
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("marshal rule conditions failed: %w", err)
	}

	const query = `
		UPDATE public.pricing_rules
		SET name = $1, rule_type = $2, conditions = $3, multiplier = $4,
		    priority = $5, is_active = $6, updated_at = now()
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		rule.Name, rule.Type, conditions, rule.Multiplier,
		rule.Priority, rule.IsActive, rule.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRuleNameTaken
		}
		return fmt.Errorf("update pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	const query = `
		UPDATE public.pricing_rules
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}
