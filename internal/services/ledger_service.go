package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
)

// TransactionParams are the caller-supplied fields of a new transaction.
type TransactionParams struct {
	Amount      float64
	Kind        core.Kind
	Category    string
	Description string
	OccurredAt  time.Time // zero means "now"
}

// LedgerService handles direct owner actions on the ledger: add, list,
// delete. Expenses above the high-value threshold additionally produce a
// warning notification and a best-effort alert event.
type LedgerService struct {
	ledger        LedgerStore
	notifications NotificationStore
	alerts        AlertPublisher // nil disables publishing
	threshold     float64
	logger        *log.Logger
}

func NewLedgerService(ledger LedgerStore, notifications NotificationStore, alerts AlertPublisher, threshold float64, logger *log.Logger) *LedgerService {
	return &LedgerService{
		ledger:        ledger,
		notifications: notifications,
		alerts:        alerts,
		threshold:     threshold,
		logger:        logger.WithComponent(log.ComponentLedger),
	}
}

func (s *LedgerService) Add(ctx context.Context, ownerID string, p TransactionParams) (core.Transaction, error) {
	now := time.Now()
	occurred := p.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}

	t := core.Transaction{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Amount:      p.Amount,
		Kind:        p.Kind,
		Category:    p.Category,
		Description: p.Description,
		OccurredAt:  occurred,
		CreatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t, err := s.ledger.Insert(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTransactionID, t.ID,
		log.FieldOwnerID, t.OwnerID,
		log.FieldKind, string(t.Kind),
		log.FieldCategory, t.Category,
		log.FieldAmount, t.Amount)

	if t.Kind == core.Expense && s.threshold > 0 && t.Amount > s.threshold {
		s.raiseHighValueAlert(ctx, t)
	}

	return t, nil
}

// List returns the owner's transactions, newest first. The store returns
// entries unordered, so ordering happens here.
func (s *LedgerService) List(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	txns, err := s.ledger.FindByOwner(ctx, ownerID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].OccurredAt.Equal(txns[j].OccurredAt) {
			return txns[i].OccurredAt.After(txns[j].OccurredAt)
		}
		return txns[i].ID > txns[j].ID
	})
	return txns, nil
}

func (s *LedgerService) Delete(ctx context.Context, ownerID, id string) error {
	t, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if t.OwnerID != ownerID {
		return core.ErrNotAuthorized
	}
	if err := s.ledger.DeleteByID(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldTransactionID, id,
		log.FieldOwnerID, ownerID)
	return nil
}

func (s *LedgerService) Notifications(ctx context.Context, ownerID string) ([]core.Notification, error) {
	return s.notifications.FindByOwner(ctx, ownerID)
}

func (s *LedgerService) MarkNotificationsRead(ctx context.Context, ownerID string) error {
	return s.notifications.MarkAllRead(ctx, ownerID)
}

func (s *LedgerService) ClearNotifications(ctx context.Context, ownerID string) error {
	return s.notifications.DeleteByOwner(ctx, ownerID)
}

// raiseHighValueAlert stores a warning notification and publishes the alert
// event. Neither failure fails the transaction that triggered it: the ledger
// write already succeeded.
func (s *LedgerService) raiseHighValueAlert(ctx context.Context, t core.Transaction) {
	n := core.Notification{
		ID:      uuid.NewString(),
		OwnerID: t.OwnerID,
		Message: fmt.Sprintf("High Spending Alert: You spent $%.2f on %s. This exceeds your limit of $%.2f.",
			t.Amount, t.Category, s.threshold),
		Kind:      core.NotificationWarning,
		CreatedAt: time.Now(),
	}

	n, err := s.notifications.Create(ctx, n)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store high value notification",
			log.FieldTransactionID, t.ID,
			log.FieldError, err)
		return
	}

	if s.alerts == nil {
		return
	}
	if err := s.alerts.PublishAlert(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish spending alert",
			log.FieldTransactionID, t.ID,
			log.FieldError, err)
	}
}
