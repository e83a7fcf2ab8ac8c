package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx implements the two stock statements against an in-memory counter,
// including the decrement guard and the restore cap, so the call sequence
// can be exercised without a database.
type fakeTx struct {
	pgx.Tx
	available int
	total     int
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	qty, ok := args[1].(int)
	if !ok {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected quantity arg %v", args[1])
	}

	switch {
	case strings.Contains(sql, "available_quantity - $2"):
		if f.available < qty {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		f.available -= qty
		return pgconn.NewCommandTag("UPDATE 1"), nil

	case strings.Contains(sql, "LEAST"):
		f.available += qty
		if f.available > f.total {
			f.available = f.total
		}
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected statement: %s", sql)
}

func TestReserveAndRestoreStock(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{available: 5, total: 5}

	// Reserving 2 of 5 leaves 3.
	require.NoError(t, ReserveStock(ctx, tx, "racket", 2))
	assert.Equal(t, 3, tx.available)

	// Oversell is refused and changes nothing.
	err := ReserveStock(ctx, tx, "racket", 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, tx.available)

	// Cancellation restores the reserved units.
	require.NoError(t, RestoreStock(ctx, tx, "racket", 2))
	assert.Equal(t, 5, tx.available)

	// A second restore never pushes the counter past total_quantity.
	require.NoError(t, RestoreStock(ctx, tx, "racket", 2))
	assert.Equal(t, 5, tx.available)
}

func TestReserveStockExactlyAvailable(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{available: 3, total: 5}

	require.NoError(t, ReserveStock(ctx, tx, "racket", 3))
	assert.Equal(t, 0, tx.available)

	err := ReserveStock(ctx, tx, "racket", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, uniqueViolation(dup))
	assert.True(t, uniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, uniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, uniqueViolation(errors.New("connection reset")))
}
