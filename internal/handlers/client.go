package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/httpx"
	"github.com/savioomio/sistema-notas-posto/internal/store"
)

type ClientHandler struct {
	store  *store.ClientStore
	logger *zap.Logger
}

func NewClientHandler(s *store.ClientStore, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{store: s, logger: logger}
}

type clientRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

func (req clientRequest) toInput() store.ClientInput {
	return store.ClientInput{
		Type:     req.Type,
		Name:     req.Name,
		Document: req.Document,
		Address:  req.Address,
		Phone:    req.Phone,
	}
}

// List: GET /api/clients?page&limit&type&status&name
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r, 50)
	filters := store.ClientFilters{
		Type:      store.ParseTypeFilter(r.URL.Query().Get("type")),
		Status:    store.ParseClientStatusFilter(r.URL.Query().Get("status")),
		NameOrder: store.ParseSortOrder(r.URL.Query().Get("name")),
	}
	clients, pagination, err := h.store.List(page, limit, filters)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse(clients, pagination))
}

// Search: GET /api/clients/search?q&limit
func (h *ClientHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		httpx.JSON(w, http.StatusOK, []struct{}{})
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	clients, err := h.store.Search(q, limit)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	client, err := h.store.GetByID(id)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	client, err := h.store.Create(req.toInput())
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Update: PUT /api/clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	client, err := h.store.Update(id, req.toInput())
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /api/clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.store.Delete(id); err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Cliente excluído com sucesso"})
}

// Statistics: GET /api/clients/{id}/statistics
func (h *ClientHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	stats, err := h.store.Statistics(id)
	if err != nil {
		handleStoreError(w, err, h.logger)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
