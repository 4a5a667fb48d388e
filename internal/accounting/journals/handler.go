package journals

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Search:        q.Get("search"),
		Status:        JournalStatus(q.Get("status")),
		ReferenceType: q.Get("referenceType"),
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

	entries, pagination, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list journal entries failed", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "failed to load journal entries")
		return
	}
	if entries == nil {
		entries = []JournalEntry{}
	}
	httpx.OK(w, http.StatusOK, map[string]any{
		"journalEntries": entries,
		"pagination":     pagination,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid journal entry id")
		return
	}
	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get journal entry failed")
		return
	}
	httpx.OK(w, http.StatusOK, entry)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.FailDecode(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	entryDate, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "entryDate must be YYYY-MM-DD")
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	if idemKey != "" {
		if _, err := uuid.Parse(idemKey); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "Idempotency-Key must be a UUID")
			return
		}
	}

	userID := internalShared.UserIDFromContext(r.Context())
	entry, err := h.service.Create(r.Context(), CreateEntryInput{
		EntryDate:      entryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		ReferenceType:  req.ReferenceType,
		ReferenceID:    req.ReferenceID,
		CreatedBy:      userID,
		IdempotencyKey: idemKey,
		Lines:          req.Lines,
	})
	if err != nil {
		h.respondError(w, err, "create journal entry failed")
		return
	}
	httpx.OK(w, http.StatusCreated, map[string]any{
		"id":          entry.ID,
		"entryNumber": entry.EntryNumber,
		"message":     "journal entry created",
	})
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid journal entry id")
		return
	}
	userID := internalShared.UserIDFromContext(r.Context())
	if err := h.service.Post(r.Context(), id, userID); err != nil {
		h.respondError(w, err, "post journal entry failed")
		return
	}
	httpx.OK(w, http.StatusOK, map[string]any{"message": "journal entry posted"})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, shared.ErrUnbalanced):
		httpx.Fail(w, http.StatusBadRequest, "journal entry is not balanced")
	case errors.Is(err, shared.ErrTooFewLines):
		httpx.Fail(w, http.StatusBadRequest, "journal entry requires at least two lines")
	case errors.Is(err, shared.ErrInvalidLine):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrJournalNotFound):
		httpx.Fail(w, http.StatusNotFound, "journal entry not found")
	case errors.Is(err, shared.ErrAccountNotFound):
		httpx.Fail(w, http.StatusBadRequest, "line references an unknown account")
	case errors.Is(err, shared.ErrSourceAlreadyLinked):
		httpx.Fail(w, http.StatusBadRequest, "reference is already linked to a journal entry")
	case errors.Is(err, internalShared.ErrIdempotencyConflict):
		httpx.Fail(w, http.StatusConflict, "request already processed")
	default:
		h.logger.Error(logMsg, slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
