package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// Timestamps are stored as unix nanoseconds so equality comparisons (the
// watermark CAS in particular) never depend on a text date format.
func storeTime(t time.Time) int64 {
	return t.UnixNano()
}

func loadTime(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// LedgerRepository persists transactions in SQLite.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Insert(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, amount, kind, category, description, occurred_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Amount, string(t.Kind), t.Category, t.Description,
		storeTime(t.OccurredAt), storeTime(t.CreatedAt))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

// FindByOwner returns the owner's transactions with occurred_at inside
// [from, to]. A zero bound is open. Result order is unspecified; callers
// sort for themselves.
func (r *LedgerRepository) FindByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]core.Transaction, error) {
	query := `SELECT id, owner_id, amount, kind, category, description, occurred_at, created_at
		 FROM transactions WHERE owner_id = ?`
	args := []any{ownerID}
	if !from.IsZero() {
		query += ` AND occurred_at >= ?`
		args = append(args, storeTime(from))
	}
	if !to.IsZero() {
		query += ` AND occurred_at <= ?`
		args = append(args, storeTime(to))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *LedgerRepository) FindByID(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, amount, kind, category, description, occurred_at, created_at
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

func (r *LedgerRepository) DeleteByID(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                     core.Transaction
		kind                  string
		occurredAt, createdAt int64
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Amount, &kind, &t.Category,
		&t.Description, &occurredAt, &createdAt); err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.Kind(kind)
	t.OccurredAt = loadTime(occurredAt)
	t.CreatedAt = loadTime(createdAt)
	return t, nil
}
