package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-erp/atelier-erp/internal/accounting/accounts"
	"github.com/atelier-erp/atelier-erp/internal/accounting/costcenters"
	"github.com/atelier-erp/atelier-erp/internal/accounting/journals"
	"github.com/atelier-erp/atelier-erp/internal/accounting/reports"
	"github.com/atelier-erp/atelier-erp/internal/expenses"
	"github.com/atelier-erp/atelier-erp/internal/observability"
	"github.com/atelier-erp/atelier-erp/internal/payments"
	"github.com/atelier-erp/atelier-erp/internal/platform/httpx"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Pool               *pgxpool.Pool
	Metrics            *observability.Metrics
	AccountsHandler    *accounts.Handler
	JournalsHandler    *journals.Handler
	CostCentersHandler *costcenters.Handler
	ReportsHandler     *reports.Handler
	ExpensesHandler    *expenses.Handler
	PaymentsHandler    *payments.Handler
}

// NewRouter constructs the chi.Router with the default middleware chain and
// every module mounted under /api/v1.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if params.Pool != nil {
			if err := params.Pool.Ping(ctx); err != nil {
				httpx.Fail(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
		}
		httpx.OK(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		params.AccountsHandler.MountRoutes(api)
		params.JournalsHandler.MountRoutes(api)
		params.CostCentersHandler.MountRoutes(api)
		params.ReportsHandler.MountRoutes(api)
		params.ExpensesHandler.MountRoutes(api)
		params.PaymentsHandler.MountRoutes(api)
	})

	return r
}
