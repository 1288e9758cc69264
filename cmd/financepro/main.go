package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/unnikrishnan-sics/FinancePro/internal/amqp"
	"github.com/unnikrishnan-sics/FinancePro/internal/analytics"
	"github.com/unnikrishnan-sics/FinancePro/internal/config"
	apphttp "github.com/unnikrishnan-sics/FinancePro/internal/http"
	"github.com/unnikrishnan-sics/FinancePro/internal/log"
	"github.com/unnikrishnan-sics/FinancePro/internal/services"
	"github.com/unnikrishnan-sics/FinancePro/internal/storage"
)

func main() {
	// Load .env for local development; production sets real env vars.
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("LOG_LEVEL")),
		Component: log.ComponentApp,
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

	ledgerRepo := storage.NewLedgerRepository(db)
	templateRepo := storage.NewTemplateRepository(db)
	notificationRepo := storage.NewNotificationRepository(db)

	// AMQP is optional: without it, alerts are stored but not published.
	var alerts services.AlertPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, alerts will not be published", log.FieldError, err)
		} else {
			defer client.Close()
			alerts = client
			logger.Info("AMQP alert publishing enabled", "exchange", cfg.AMQPExchange)
		}
	} else {
		logger.Info("AMQP disabled, alerts stored locally only")
	}

	ledgerService := services.NewLedgerService(ledgerRepo, notificationRepo, alerts, cfg.HighValueThreshold, logger)
	recurringService := services.NewRecurringService(templateRepo, ledgerRepo, logger)
	analyticsService := analytics.NewService(ledgerRepo, logger)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:            ":" + cfg.Port,
		ReportCacheTTL:  cfg.ReportCacheTTL,
		ReportCacheSize: cfg.ReportCacheSize,
	}, ledgerService, recurringService, analyticsService, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
