package http

import (
	"net/http"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/core"
	"github.com/unnikrishnan-sics/FinancePro/internal/services"
)

type setupRecurringRequest struct {
	Amount      float64 `json:"amount"`
	Kind        string  `json:"kind"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Frequency   string  `json:"frequency"`
}

func (s *Server) handleSetupRecurring(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	var req setupRecurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rt, err := s.recurring.Setup(r.Context(), owner, services.TemplateParams{
		Amount:      req.Amount,
		Kind:        core.Kind(req.Kind),
		Category:    req.Category,
		Description: req.Description,
		Frequency:   core.Frequency(req.Frequency),
	}, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Setup writes the first transaction immediately.
	s.reportCache.Delete(owner)

	writeJSON(w, http.StatusCreated, toTemplateView(rt))
}

type checkRecurringResponse struct {
	GeneratedCount int `json:"generatedCount"`
}

// handleCheckRecurring materializes the caller's due templates on demand, the
// same sweep the background worker runs on a schedule.
func (s *Server) handleCheckRecurring(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	generated, err := s.recurring.MaterializeDue(r.Context(), owner, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if generated > 0 {
		s.reportCache.Delete(owner)
	}

	writeJSON(w, http.StatusOK, checkRecurringResponse{GeneratedCount: generated})
}
