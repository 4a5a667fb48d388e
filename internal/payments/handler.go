package payments

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
	r.Get("/payments", h.List)
	r.Post("/payments", h.Create)
	r.Get("/payments/{id}", h.Get)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters ListFilters
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("customerId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CustomerID = &parsed
		}
	}
	if v := q.Get("invoiceId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.InvoiceID = &parsed
		}
	}
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

	items, pagination, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list payments failed", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "failed to load payments")
		return
	}
	if items == nil {
		items = []Payment{}
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"payments":   items,
		"pagination": pagination,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get payment failed")
		return
	}
	httpx.OK(w, http.StatusOK, payment)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.FailDecode(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "paymentDate must be YYYY-MM-DD")
		return
	}

	userID := internalShared.UserIDFromContext(r.Context())
	payment, err := h.service.Create(r.Context(), CreatePaymentInput{
		CustomerID:    req.CustomerID,
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   paymentDate,
		CreatedBy:     userID,
	})
	if err != nil {
		h.respondError(w, err, "create payment failed")
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{
		"id":             payment.ID,
		"journalEntryId": payment.JournalEntryID,
		"message":        "payment recorded",
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		httpx.Fail(w, http.StatusNotFound, "payment not found")
	case errors.Is(err, ErrInvoiceNotFound):
		httpx.Fail(w, http.StatusBadRequest, "invoice not found")
	case errors.Is(err, shared.ErrMappingNotFound):
		httpx.Fail(w, http.StatusBadRequest, "no ledger account mapped for this payment")
	case errors.Is(err, shared.ErrSourceAlreadyLinked):
		httpx.Fail(w, http.StatusBadRequest, "payment already posted to the ledger")
	default:
		h.logger.Error(logMsg, slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
