package http

import (
	"net/http"
	"time"
)

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(w, r)
	if owner == "" {
		return
	}

	if report, ok := s.reportCache.Get(owner); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.analytics.Report(r.Context(), owner, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.reportCache.Set(owner, report)

	writeJSON(w, http.StatusOK, report)
}
