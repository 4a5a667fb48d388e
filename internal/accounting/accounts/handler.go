package accounts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelier-erp/atelier-erp/internal/accounting/shared"
	"github.com/atelier-erp/atelier-erp/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Search:      q.Get("search"),
		AccountType: AccountType(q.Get("accountType")),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	if v := q.Get("categoryId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CategoryID = &parsed
		}
	}
	if v := q.Get("parentAccountId"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.ParentAccountID = &parsed
		}
	}
	if v := q.Get("isActive"); v != "" {
		active := v == "true" || v == "1"
		filters.IsActive = &active
	}

	items, pagination, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list accounts failed", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "failed to load accounts")
		return
	}
	if items == nil {
		items = []AccountSummary{}
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"accounts":   items,
		"pagination": pagination,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.FailDecode(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "create account failed")
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "account created",
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid account id")
		return
	}
	var req UpdateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.FailDecode(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		h.respondError(w, err, "update account failed")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"message": "account updated"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid account id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, err, "delete account failed")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"message": "account deleted"})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, shared.ErrDuplicateCode):
		httpx.Fail(w, http.StatusBadRequest, "account code already in use")
	case errors.Is(err, shared.ErrAccountNotFound):
		httpx.Fail(w, http.StatusNotFound, "account not found")
	default:
		h.logger.Error(logMsg, slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
