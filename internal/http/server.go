// Package http exposes the ledger, recurring and analytics services as a
// JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/unnikrishnan-sics/FinancePro/internal/analytics"
	"github.com/unnikrishnan-sics/FinancePro/internal/cache"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
	"github.com/unnikrishnan-sics/FinancePro/internal/services"
)

const (
	// ownerHeader carries the caller's identity. Authentication itself
	// happens upstream; the API trusts the header.
	ownerHeader = "X-User-ID"

	readHeaderTimeout = 5 * time.Second
	cacheSweepEvery   = 10 * time.Minute
)

// Options bundle the server's tunables.
type Options struct {
	Addr            string
	ReportCacheTTL  time.Duration
	ReportCacheSize int
}

// Server wires the HTTP routes to the services. Analytics reports are cached
// per owner and invalidated whenever the owner's ledger changes.
type Server struct {
	http.Server

	ledger    *services.LedgerService
	recurring *services.RecurringService
	analytics *analytics.Service

	reportCache *cache.LRU[*analytics.Report]
	rateLimiter *rateLimiter
	logger      *log.Logger

	stopCacheSweep chan struct{}
	shutdownOnce   sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(opts Options, ledger *services.LedgerService, recurring *services.RecurringService, reports *analytics.Service, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		ledger:         ledger,
		recurring:      recurring,
		analytics:      reports,
		reportCache:    cache.NewLRU[*analytics.Report](opts.ReportCacheSize, opts.ReportCacheTTL),
		rateLimiter:    newRateLimiter(),
		logger:         logger.WithComponent(log.ComponentHTTP),
		stopCacheSweep: make(chan struct{}),
	}

	go s.sweepReportCache()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleHealth)

	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleAddTransaction))
	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("POST /api/recurring", s.wrap(s.handleSetupRecurring))
	mux.HandleFunc("POST /api/recurring/check", s.wrap(s.handleCheckRecurring))

	mux.HandleFunc("GET /api/analytics", s.wrap(s.handleAnalytics))

	mux.HandleFunc("GET /api/notifications", s.wrap(s.handleListNotifications))
	mux.HandleFunc("POST /api/notifications/read", s.wrap(s.handleMarkNotificationsRead))
	mux.HandleFunc("DELETE /api/notifications", s.wrap(s.handleClearNotifications))

	return s
}

// wrap adds request logging, rate limiting on writes and status capture
// around a handler.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		ctx := r.Context()

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP(r)) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				"request_id", requestID,
				"client_ip", clientIP(r),
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request handled",
			"request_id", requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

func (s *Server) sweepReportCache() {
	ticker := time.NewTicker(cacheSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.reportCache.CleanExpired(); n > 0 {
				s.logger.Debug("Report cache cleanup", "entries_removed", n)
			}
		case <-s.stopCacheSweep:
			return
		}
	}
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheSweep)
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// statusWriter captures the response status for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
