package http

import (
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
)

// View types shape domain structs for the JSON API.

type transactionView struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type templateView struct {
	ID            string    `json:"id"`
	Amount        float64   `json:"amount"`
	Kind          string    `json:"kind"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Frequency     string    `json:"frequency"`
	LastGenerated time.Time `json:"lastGenerated"`
	Active        bool      `json:"active"`
}

type notificationView struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Category:    t.Category,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionViews(txns []core.Transaction) []transactionView {
	out := make([]transactionView, len(txns))
	for i, t := range txns {
		out[i] = toTransactionView(t)
	}
	return out
}

func toTemplateView(rt core.RecurringTemplate) templateView {
	return templateView{
		ID:            rt.ID,
		Amount:        rt.Amount,
		Kind:          string(rt.Kind),
		Category:      rt.Category,
		Description:   rt.Description,
		Frequency:     string(rt.Frequency),
		LastGenerated: rt.LastGenerated,
		Active:        rt.Active,
	}
}

func toNotificationViews(ns []core.Notification) []notificationView {
	out := make([]notificationView, len(ns))
	for i, n := range ns {
		out[i] = notificationView{
			ID:        n.ID,
			Message:   n.Message,
			Kind:      n.Kind,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
