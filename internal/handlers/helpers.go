package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/httpx"
	"github.com/savioomio/sistema-notas-posto/internal/store"
)

// handleStoreError maps store errors to the API's status codes: validation and
// integrity guards are 400, missing records 404, anything else 500.
func handleStoreError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.JSONError(w, http.StatusBadRequest, vErr.Error(), vErr.Fields)
	case errors.Is(err, store.ErrDuplicateDocument),
		errors.Is(err, store.ErrClientHasInvoices):
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, store.ErrClientNotFound),
		errors.Is(err, store.ErrInvoiceNotFound):
		httpx.JSONError(w, http.StatusNotFound, err.Error(), nil)
	default:
		logger.Error("store error", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "Erro interno do servidor", nil)
	}
}

func parsePagination(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return
}

func idParam(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id inválido")
	}
	return uint(id), nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseDate accepts the formats the desktop UI sends: full RFC3339 timestamps
// or bare dates.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("data inválida: " + s)
}

func listResponse(data any, p store.Pagination) map[string]any {
	return map[string]any{"data": data, "pagination": p}
}
