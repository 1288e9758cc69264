package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// TemplateRepository persists recurring templates in SQLite.
type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, rt core.RecurringTemplate) (core.RecurringTemplate, error) {
	active := 0
	if rt.Active {
		active = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_templates
		 (id, owner_id, amount, kind, category, description, frequency, last_generated, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.OwnerID, rt.Amount, string(rt.Kind), rt.Category, rt.Description,
		string(rt.Frequency), storeTime(rt.LastGenerated), active, storeTime(time.Now()))
	if err != nil {
		return core.RecurringTemplate{}, fmt.Errorf("insert recurring template: %w", err)
	}
	return rt, nil
}

func (r *TemplateRepository) FindActiveByOwner(ctx context.Context, ownerID string) ([]core.RecurringTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, amount, kind, category, description, frequency, last_generated, active
		 FROM recurring_templates WHERE owner_id = ? AND active = 1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query recurring templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// ActiveOwners lists owners that have at least one active template. Used by
// the periodic worker to scan the whole store.
func (r *TemplateRepository) ActiveOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT owner_id FROM recurring_templates WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("query active owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}
	return owners, nil
}

// AdvanceWatermark moves last_generated from expected to next in a single
// compare-and-swap. It returns false when the stored watermark no longer
// matches expected, i.e. another call already handled this period.
func (r *TemplateRepository) AdvanceWatermark(ctx context.Context, id string, expected, next time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_templates SET last_generated = ?
		 WHERE id = ? AND last_generated = ? AND active = 1`,
		storeTime(next), id, storeTime(expected))
	if err != nil {
		return false, fmt.Errorf("advance watermark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("advance watermark rows affected: %w", err)
	}
	return n == 1, nil
}

func collectTemplates(rows *sql.Rows) ([]core.RecurringTemplate, error) {
	var out []core.RecurringTemplate
	for rows.Next() {
		var (
			rt            core.RecurringTemplate
			kind, freq    string
			lastGenerated int64
			active        int
		)
		if err := rows.Scan(&rt.ID, &rt.OwnerID, &rt.Amount, &kind, &rt.Category,
			&rt.Description, &freq, &lastGenerated, &active); err != nil {
			return nil, fmt.Errorf("scan recurring template: %w", err)
		}
		rt.Kind = core.Kind(kind)
		rt.Frequency = core.Frequency(freq)
		rt.LastGenerated = loadTime(lastGenerated)
		rt.Active = active == 1
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recurring templates: %w", err)
	}
	return out, nil
}
