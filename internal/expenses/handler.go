package expenses

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	"github.com/atelier-erp/atelier-erp/internal/platform/httpx"
	internalShared "github.com/atelier-erp/atelier-erp/internal/shared"
)

const dateLayout = "2006-01-02"

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/expenses", h.List)
	r.Post("/expenses", h.Create)
	r.Get("/expenses/{id}", h.Get)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Category: q.Get("category"),
		Status:   ExpenseStatus(q.Get("status")),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("dateFrom"); v != "" {
		if parsed, err := time.Parse(dateLayout, v); err == nil {
			filters.DateFrom = &parsed
		}
	}
	if v := q.Get("dateTo"); v != "" {
		if parsed, err := time.Parse(dateLayout, v); err == nil {
			filters.DateTo = &parsed
		}
	}
	if v := q.Get("vendorId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.VendorID = &parsed
		}
	}

	items, pagination, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list expenses failed", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	if items == nil {
		items = []Expense{}
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"expenses":   items,
		"pagination": pagination,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get expense failed")
		return
	}
	httpx.OK(w, http.StatusOK, expense)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.FailDecode(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	expenseDate, err := time.Parse(dateLayout, req.ExpenseDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "expenseDate must be YYYY-MM-DD")
		return
	}

	userID := internalShared.UserIDFromContext(r.Context())
	expense, err := h.service.Create(r.Context(), CreateExpenseInput{
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		ExpenseDate:   expenseDate,
		VendorID:      req.VendorID,
		CostCenterID:  req.CostCenterID,
		PaymentMethod: req.PaymentMethod,
		CreatedBy:     userID,
	})
	if err != nil {
		h.respondError(w, err, "create expense failed")
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{
		"id":             expense.ID,
		"journalEntryId": expense.JournalEntryID,
		"message":        "expense recorded",
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		httpx.Fail(w, http.StatusNotFound, "expense not found")
	case errors.Is(err, shared.ErrMappingNotFound):
		httpx.Fail(w, http.StatusBadRequest, "no ledger account mapped for this expense")
	case errors.Is(err, shared.ErrSourceAlreadyLinked):
		httpx.Fail(w, http.StatusBadRequest, "expense already posted to the ledger")
	default:
		h.logger.Error(logMsg, slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
