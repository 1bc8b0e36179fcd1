package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/httpx"
	"github.com/savioomio/sistema-notas-posto/internal/store"
)

type InvoiceHandler struct {
	store  *store.InvoiceStore
	logger *zap.Logger
}

func NewInvoiceHandler(s *store.InvoiceStore, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{store: s, logger: logger}
}

type invoiceRequest struct {
	ClientID     uint                 `json:"client_id"`
	PurchaseDate string               `json:"purchase_date"`
	DueDate      string               `json:"due_date"`
	Status       string               `json:"status"`
	TotalValue   float64              `json:"total_value"`
	Products     []store.ProductInput `json:"products"`
}

// toInput parses the date strings; absent dates stay zero so the store can
// apply its own defaults and required-field checks.
func (req invoiceRequest) toInput() (store.InvoiceInput, error) {
	in := store.InvoiceInput{
		ClientID:   req.ClientID,
		Status:     req.Status,
		TotalValue: req.TotalValue,
		Products:   req.Products,
	}
	if req.PurchaseDate != "" {
		t, err := parseDate(req.PurchaseDate)
		if err != nil {
			return in, err
		}
		in.PurchaseDate = t
	}
	if req.DueDate != "" {
		t, err := parseDate(req.DueDate)
		if err != nil {
			return in, err
		}
		in.DueDate = t
	}
	return in, nil
}

// List: GET /api/invoices?page&limit&status&value&due&purchase
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 50)
	filters := store.InvoiceFilters{
		Status:        store.ParseInvoiceStatusFilter(r.URL.Query().Get("status")),
		ValueOrder:    store.ParseSortOrder(r.URL.Query().Get("value")),
		DueOrder:      store.ParseSortOrder(r.URL.Query().Get("due")),
		PurchaseOrder: store.ParseSortOrder(r.URL.Query().Get("purchase")),
	}
	invoices, pagination, err := h.store.List(page, limit, filters)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse(invoices, pagination))
}

// Get: GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	inv, err := h.store.GetByID(id)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// ListByClient: GET /api/invoices/client/{clientId}?page&limit
func (h *InvoiceHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := idParam(r, "clientId")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	page, limit := parsePagination(r, 10)
	invoices, pagination, err := h.store.ListByClient(clientID, page, limit)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse(invoices, pagination))
}

// Create: POST /api/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	in, err := req.toInput()
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	inv, err := h.store.Create(in)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Update: PUT /api/invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	in, err := req.toInput()
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	inv, err := h.store.Update(id, in)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Pay: PUT /api/invoices/{id}/pay
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	inv, err := h.store.Pay(id)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: DELETE /api/invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.store.Delete(id); err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Nota excluída com sucesso"})
}
