package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
)

// recurringMarker tags ledger entries that came out of a template.
const recurringMarker = " (Recurring)"

// TemplateParams are the caller-supplied fields of a new recurring template.
type TemplateParams struct {
	Amount      float64
	Kind        core.Kind
	Category    string
	Description string
	Frequency   core.Frequency
}

// RecurringService creates recurring templates and materializes due periods
// into ledger transactions.
//
// Missed periods are collapsed: a check generates at most one transaction per
// template and resets the watermark to the check instant, so a template that
// went unchecked for three months yields one entry, not three. The watermark
// CAS makes concurrent checks safe without a lock.
type RecurringService struct {
	templates TemplateStore
	ledger    LedgerStore
	logger    *log.Logger
}

func NewRecurringService(templates TemplateStore, ledger LedgerStore, logger *log.Logger) *RecurringService {
	return &RecurringService{
		templates: templates,
		ledger:    ledger,
		logger:    logger.WithComponent(log.ComponentRecurring),
	}
}

// Setup creates a template and synchronously materializes its first
// transaction, dated now. Users set up a recurring payment at the moment they
// pay it, so the first entry lands immediately and the watermark starts at now.
func (s *RecurringService) Setup(ctx context.Context, ownerID string, p TemplateParams, now time.Time) (core.RecurringTemplate, error) {
	rt := core.RecurringTemplate{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Amount:        p.Amount,
		Kind:          p.Kind,
		Category:      p.Category,
		Description:   p.Description,
		Frequency:     p.Frequency,
		LastGenerated: now,
		Active:        true,
	}
	if err := rt.Validate(); err != nil {
		return core.RecurringTemplate{}, err
	}

	rt, err := s.templates.Create(ctx, rt)
	if err != nil {
		return core.RecurringTemplate{}, fmt.Errorf("create template: %w", err)
	}

	if _, err := s.ledger.Insert(ctx, s.transactionFrom(rt, now)); err != nil {
		return core.RecurringTemplate{}, fmt.Errorf("insert initial transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Recurring template created",
		log.FieldTemplateID, rt.ID,
		log.FieldOwnerID, rt.OwnerID,
		log.FieldFrequency, string(rt.Frequency),
		log.FieldAmount, rt.Amount)

	return rt, nil
}

// MaterializeDue checks every active template of the owner and generates a
// transaction for each that is due. The returned count includes only
// templates this call actually handled; templates claimed by a concurrent
// call lose the watermark CAS and are skipped silently.
func (s *RecurringService) MaterializeDue(ctx context.Context, ownerID string, now time.Time) (int, error) {
	templates, err := s.templates.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("find active templates: %w", err)
	}

	generated := 0
	for _, rt := range templates {
		checker, err := GetDueChecker(rt.Frequency)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping template with unknown frequency",
				log.FieldTemplateID, rt.ID,
				log.FieldFrequency, string(rt.Frequency))
			continue
		}
		if !IsDue(checker, rt.LastGenerated, now) {
			continue
		}

		// Claim the period before inserting: a lost race must never
		// produce a duplicate ledger entry.
		ok, err := s.templates.AdvanceWatermark(ctx, rt.ID, rt.LastGenerated, now)
		if err != nil {
			return generated, fmt.Errorf("advance watermark: %w", err)
		}
		if !ok {
			s.logger.DebugContext(ctx, "Template already handled this cycle",
				log.FieldTemplateID, rt.ID)
			continue
		}

		if _, err := s.ledger.Insert(ctx, s.transactionFrom(rt, now)); err != nil {
			return generated, fmt.Errorf("insert recurring transaction: %w", err)
		}
		generated++

		s.logger.InfoContext(ctx, "Materialized recurring transaction",
			log.FieldTemplateID, rt.ID,
			log.FieldOwnerID, rt.OwnerID,
			log.FieldAmount, rt.Amount,
			log.FieldWatermark, now.Format(time.RFC3339))
	}

	return generated, nil
}

// MaterializeAllDue runs MaterializeDue for every owner with active
// templates. Used by the periodic worker.
func (s *RecurringService) MaterializeAllDue(ctx context.Context, now time.Time) (int, error) {
	owners, err := s.templates.ActiveOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active owners: %w", err)
	}

	total := 0
	for _, owner := range owners {
		n, err := s.MaterializeDue(ctx, owner, now)
		total += n
		if err != nil {
			return total, fmt.Errorf("materialize for owner %s: %w", owner, err)
		}
	}

	s.logger.InfoContext(ctx, "Recurring materialization sweep complete",
		log.FieldGenerated, total,
		"owners", len(owners))

	return total, nil
}

func (s *RecurringService) transactionFrom(rt core.RecurringTemplate, now time.Time) core.Transaction {
	return core.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     rt.OwnerID,
		Amount:      rt.Amount,
		Kind:        rt.Kind,
		Category:    rt.Category,
		Description: rt.Description + recurringMarker,
		OccurredAt:  now,
		CreatedAt:   now,
	}
}
