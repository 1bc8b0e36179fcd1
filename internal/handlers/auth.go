package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/auth"
	"github.com/savioomio/sistema-notas-posto/internal/httpx"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type passwordRequest struct {
	Password string `json:"password"`
}

// Login: POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	if req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Senha é obrigatória", nil)
		return
	}
	token, err := h.svc.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			httpx.JSONError(w, http.StatusUnauthorized, "Senha incorreta", nil)
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "Erro interno do servidor", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// UpdatePassword: PUT /api/password
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "JSON inválido", nil)
		return
	}
	if req.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Nova senha é obrigatória", nil)
		return
	}
	if err := h.svc.UpdatePassword(req.Password); err != nil {
		h.logger.Error("password update failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "Erro interno do servidor", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Senha atualizada com sucesso"})
}

// AuthTest: GET /api/auth-test — smoke endpoint for the desktop shell.
func (h *AuthHandler) AuthTest(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Autenticado com sucesso"})
}
