package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:         "t-1",
		OwnerID:    "u-1",
		Amount:     42.50,
		Kind:       Expense,
		Category:   "Groceries",
		OccurredAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(*Transaction) {},
			wantErr: nil,
		},
		{
			name:    "zero amount",
			mutate:  func(tr *Transaction) { tr.Amount = 0 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(tr *Transaction) { tr.Amount = -10 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown kind",
			mutate:  func(tr *Transaction) { tr.Kind = "transfer" },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "missing category",
			mutate:  func(tr *Transaction) { tr.Category = "  " },
			wantErr: ErrEmptyCategory,
		},
		{
			name:    "missing owner",
			mutate:  func(tr *Transaction) { tr.OwnerID = "" },
			wantErr: ErrEmptyOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTransaction()
			tt.mutate(&tr)
			err := tr.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransaction_Validate_LongDescription(t *testing.T) {
	tr := validTransaction()
	tr.Description = strings.Repeat("x", 201)
	if err := tr.Validate(); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("Validate() error = %v, want ErrDescriptionTooLong", err)
	}
}

func TestRecurringTemplate_Validate(t *testing.T) {
	valid := RecurringTemplate{
		ID:            "r-1",
		OwnerID:       "u-1",
		Amount:        1200,
		Kind:          Expense,
		Category:      "Rent",
		Description:   "Monthly rent",
		Frequency:     Monthly,
		LastGenerated: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}

	tests := []struct {
		name    string
		mutate  func(*RecurringTemplate)
		wantErr error
	}{
		{
			name:    "valid monthly",
			mutate:  func(*RecurringTemplate) {},
			wantErr: nil,
		},
		{
			name:    "valid yearly",
			mutate:  func(rt *RecurringTemplate) { rt.Frequency = Yearly },
			wantErr: nil,
		},
		{
			name:    "unsupported frequency",
			mutate:  func(rt *RecurringTemplate) { rt.Frequency = "weekly" },
			wantErr: ErrInvalidFrequency,
		},
		{
			name:    "zero amount",
			mutate:  func(rt *RecurringTemplate) { rt.Amount = 0 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing category",
			mutate:  func(rt *RecurringTemplate) { rt.Category = "" },
			wantErr: ErrEmptyCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := valid
			tt.mutate(&rt)
			err := rt.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
