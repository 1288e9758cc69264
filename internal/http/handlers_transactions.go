package http

import (
	"net/http"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/services"
)

type addTransactionRequest struct {
	Amount      float64   `json:"amount"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"` // optional, defaults to now
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req addTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := s.ledger.Add(r.Context(), owner, services.TransactionParams{
		Amount:      req.Amount,
		Kind:        core.Kind(req.Kind),
		Category:    req.Category,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A new entry changes every report built from this owner's ledger.
	s.reportCache.Delete(owner)

	writeJSON(w, http.StatusCreated, toTransactionView(t))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	txns, err := s.ledger.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionViews(txns))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	id := r.PathValue("id")
	if err := s.ledger.Delete(r.Context(), owner, id); err != nil {
		writeServiceError(w, err)
		return
	}

	s.reportCache.Delete(owner)

	w.WriteHeader(http.StatusNoContent)
}
