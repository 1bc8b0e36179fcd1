package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/httpx"
)

// RequireAuth gates data endpoints behind a valid bearer token. A missing
// token yields 401, an invalid or expired one 403, matching the original API
// contract.
func RequireAuth(svc *Service, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				httpx.JSONError(w, http.StatusUnauthorized, "Token não fornecido", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httpx.JSONError(w, http.StatusUnauthorized, "Formato de token inválido", nil)
				return
			}

			if _, err := svc.ValidateToken(parts[1]); err != nil {
				logger.Warn("auth: invalid token",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				httpx.JSONError(w, http.StatusForbidden, "Token inválido: "+err.Error(), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
