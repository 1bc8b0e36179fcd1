package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/db"
)

func setupAuthService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedConfig(conn); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return NewService(conn, []byte("test-secret"), time.Hour, zap.NewNop())
}

func TestLogin(t *testing.T) {
	svc := setupAuthService(t)

	token, err := svc.Login(db.DefaultPassword)
	if err != nil {
		t.Fatalf("login with default password: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !claims.Authorized {
		t.Fatal("expected authorized claim")
	}

	if _, err := svc.Login("errada"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	svc := setupAuthService(t)

	if err := svc.UpdatePassword("nova-senha"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := svc.Login(db.DefaultPassword); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := svc.Login("nova-senha"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}

	// A token signed with a different secret must not validate.
	claims := Claims{Authorized: true, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateToken(forged); err == nil {
		t.Fatal("expected error for token signed with wrong secret")
	}

	// A structurally valid token without the authorized claim is rejected too.
	bare, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.ValidateToken(bare); err == nil {
		t.Fatal("expected error for token without authorized claim")
	}
}

func TestRequireAuth(t *testing.T) {
	svc := setupAuthService(t)
	handler := RequireAuth(svc, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"bad format", "tokensemprefixo", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}

	token, err := svc.Login(db.DefaultPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}
}
