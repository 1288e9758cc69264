package services

import (
	"context"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// Store interfaces consumed by the services. internal/storage provides the
// SQLite implementations; tests provide in-memory fakes.

type LedgerStore interface {
	Insert(ctx context.Context, t core.Transaction) (core.Transaction, error)
	// FindByOwner returns entries in unspecified order; zero bounds are open.
	FindByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]core.Transaction, error)
	FindByID(ctx context.Context, id string) (core.Transaction, error)
	DeleteByID(ctx context.Context, id, ownerID string) error
}

type TemplateStore interface {
	Create(ctx context.Context, rt core.RecurringTemplate) (core.RecurringTemplate, error)
	FindActiveByOwner(ctx context.Context, ownerID string) ([]core.RecurringTemplate, error)
	ActiveOwners(ctx context.Context) ([]string, error)
	// AdvanceWatermark returns false on CAS mismatch, which is not an error.
	AdvanceWatermark(ctx context.Context, id string, expected, next time.Time) (bool, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n core.Notification) (core.Notification, error)
	FindByOwner(ctx context.Context, ownerID string) ([]core.Notification, error)
	MarkAllRead(ctx context.Context, ownerID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// AlertPublisher pushes a spending alert to the event channel. Publishing is
// best effort; callers log failures and move on.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, n core.Notification) error
}
