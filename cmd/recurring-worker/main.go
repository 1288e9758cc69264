package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unnikrishnan-sics/FinancePro/internal/config"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
	"github.com/unnikrishnan-sics/FinancePro/internal/services"
	"github.com/unnikrishnan-sics/FinancePro/internal/storage"
)

// The worker sweeps every active recurring template on an interval and
// materializes the due ones. Safe to run alongside the API server and other
// worker instances: the watermark CAS guarantees each due period is generated
// once no matter how many sweeps race.
func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	recurring := services.NewRecurringService(
		storage.NewTemplateRepository(db),
		storage.NewLedgerRepository(db),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Recurring worker started",
		"interval", cfg.RecurringCheckInterval.String(),
		"db", cfg.SQLiteDBPath)

	sweep := func(now time.Time) {
		count, err := recurring.MaterializeAllDue(ctx, now)
		if err != nil {
			logger.Error("Materialization sweep failed", log.FieldError, err)
			return
		}
		logger.Info("Sweep complete", log.FieldGenerated, count)
	}

	// First sweep right away, then on the ticker.
	sweep(time.Now())

	ticker := time.NewTicker(cfg.RecurringCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			sweep(now)
		case <-ctx.Done():
			logger.Info("Recurring worker stopped")
			return
		}
	}
}
