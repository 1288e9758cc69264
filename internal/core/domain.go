package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

const maxDescriptionLen = 200

// Notification kinds.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
)

type (
	// Kind classifies a ledger entry as money in or money out.
	Kind string

	// Frequency is the repetition period of a recurring template.
	Frequency string

	// Transaction is a single immutable ledger entry. Entries are created
	// and deleted by their owner, never updated in place.
	Transaction struct {
		ID          string
		OwnerID     string
		Amount      float64
		Kind        Kind
		Category    string
		Description string
		OccurredAt  time.Time
		CreatedAt   time.Time
	}

	// RecurringTemplate describes a payment that repeats on a fixed
	// calendar period. LastGenerated is the watermark: the instant of the
	// last successful materialization, monotonically non-decreasing.
	RecurringTemplate struct {
		ID            string
		OwnerID       string
		Amount        float64
		Kind          Kind
		Category      string
		Description   string
		Frequency     Frequency
		LastGenerated time.Time
		Active        bool
	}

	// Notification is a stored alert for an owner, e.g. a high-value
	// spending warning. Delivery beyond storage is someone else's job.
	Notification struct {
		ID        string
		OwnerID   string
		Message   string
		Kind      string
		Read      bool
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidKind        = errors.New("invalid transaction kind")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyOwner         = errors.New("empty owner id")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrNotFound           = errors.New("not found")
	ErrNotAuthorized      = errors.New("not authorized")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Monthly, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

func (rt RecurringTemplate) Validate() error {
	if strings.TrimSpace(rt.OwnerID) == "" {
		return ErrEmptyOwner
	}
	if rt.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := rt.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(rt.Category) == "" {
		return ErrEmptyCategory
	}
	if err := rt.Frequency.Validate(); err != nil {
		return err
	}
	if len(rt.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}
