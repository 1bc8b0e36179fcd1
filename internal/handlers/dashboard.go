package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/httpx"
	"github.com/savioomio/sistema-notas-posto/internal/store"
)

type DashboardHandler struct {
	store  *store.DashboardStore
	logger *zap.Logger
}

func NewDashboardHandler(s *store.DashboardStore, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: s, logger: logger}
}

func pageParam(r *http.Request, name string) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// Get: GET /api/dashboard?overdue_page&pending_page&limit
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	overduePage := pageParam(r, "overdue_page")
	pendingPage := pageParam(r, "pending_page")
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	overdueClients, overduePag, err := h.store.OverdueClients(overduePage, limit)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	pendingInvoices, pendingPag, err := h.store.PendingInvoices(pendingPage, limit)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	totals, err := h.store.Totals()
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"overdue_clients":  listResponse(overdueClients, overduePag),
		"pending_invoices": listResponse(pendingInvoices, pendingPag),
		"totals":           totals,
	})
}
