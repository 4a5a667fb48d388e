package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/accounting/accounts"
	"github.com/atelier-erp/atelier-erp/internal/accounting/costcenters"
	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	"github.com/atelier-erp/atelier-erp/internal/accounting/reports"
	"github.com/atelier-erp/atelier-erp/internal/app"
	"github.com/atelier-erp/atelier-erp/internal/expenses"
	"github.com/atelier-erp/atelier-erp/internal/observability"
	"github.com/atelier-erp/atelier-erp/internal/payments"
	"github.com/atelier-erp/atelier-erp/internal/platform/db"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)
	idemStore := shared.NewIdempotencyStore(pool)

	accountsHandler := accounts.NewHandler(logger, accounts.NewService(accounts.NewRepository(pool)))
	journalsHandler := journals.NewHandler(logger, journals.NewService(journals.NewRepository(pool), auditLogger, idemStore))
	costCentersHandler := costcenters.NewHandler(logger, costcenters.NewService(costcenters.NewRepository(pool)))
	reportsHandler := reports.NewHandler(logger, reports.NewService(reports.NewRepository(pool)))
	expensesHandler := expenses.NewHandler(logger, expenses.NewService(expenses.NewRepository(pool), auditLogger))
	paymentsHandler := payments.NewHandler(logger, payments.NewService(payments.NewRepository(pool), auditLogger))

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Pool:               pool,
		Metrics:            metrics,
		AccountsHandler:    accountsHandler,
		JournalsHandler:    journalsHandler,
		CostCentersHandler: costCentersHandler,
		ReportsHandler:     reportsHandler,
		ExpensesHandler:    expensesHandler,
		PaymentsHandler:    paymentsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
