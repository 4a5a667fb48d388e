package reports

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/atelier-erp/atelier-erp/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

type Handler struct {
	logger  *slog.Logger
	service *Service
	group   singleflight.Group
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/trial-balance", h.TrialBalance)
	r.Get("/reports/income-statement", h.IncomeStatement)
	r.Get("/reports/balance-sheet", h.BalanceSheet)
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.parseDate(w, r, "asOfDate", time.Now())
	if !ok {
		return
	}
	h.build(w, r, "tb:"+asOf.Format(dateLayout), func(ctx context.Context) (interface{}, error) {
		return h.service.TrialBalance(ctx, asOf)
	})
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	defaultStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	start, ok := h.parseDate(w, r, "startDate", defaultStart)
	if !ok {
		return
	}
	end, ok := h.parseDate(w, r, "endDate", now)
	if !ok {
		return
	}
	if end.Before(start) {
		httpx.Fail(w, http.StatusBadRequest, "endDate must not precede startDate")
		return
	}
	key := "is:" + start.Format(dateLayout) + ":" + end.Format(dateLayout)
	h.build(w, r, key, func(ctx context.Context) (interface{}, error) {
		return h.service.IncomeStatement(ctx, start, end)
	})
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.parseDate(w, r, "asOfDate", time.Now())
	if !ok {
		return
	}
	h.build(w, r, "bs:"+asOf.Format(dateLayout), func(ctx context.Context) (interface{}, error) {
		return h.service.BalanceSheet(ctx, asOf)
	})
}

// build collapses concurrent identical report requests onto one DB scan.
func (h *Handler) build(w http.ResponseWriter, r *http.Request, key string, fn func(context.Context) (interface{}, error)) {
	ctx := r.Context()
	resultChan := h.group.DoChan(key, func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		httpx.Fail(w, http.StatusInternalServerError, "report build cancelled")
	case res := <-resultChan:
		if res.Err != nil {
			h.logger.Error("report build failed", slog.String("key", key), slog.Any("error", res.Err))
			httpx.Fail(w, http.StatusInternalServerError, "failed to build report")
			return
		}
		httpx.OK(w, http.StatusOK, res.Val)
	}
}

// dayOf pins t's calendar day to UTC midnight. Truncating the instant
// instead would shift the day around UTC boundaries on non-UTC clocks.
func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (h *Handler) parseDate(w http.ResponseWriter, r *http.Request, param string, fallback time.Time) (time.Time, bool) {
	v := r.URL.Query().Get(param)
	if v == "" {
		return dayOf(fallback), true
	}
	parsed, err := time.Parse(dateLayout, v)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, param+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}
