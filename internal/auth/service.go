package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

// ErrInvalidPassword is returned by Login when the password does not match the
// stored credential.
var ErrInvalidPassword = errors.New("senha incorreta")

// Claims carried by access tokens.
type Claims struct {
	Authorized bool `json:"authorized"`
	jwt.RegisteredClaims
}

// Service verifies the shared password against the singleton config row and
// signs bearer tokens. Only the bcrypt hash is ever stored.
type Service struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(db *gorm.DB, secret []byte, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{db: db, secret: secret, ttl: ttl, logger: logger}
}

// Login checks password against the stored hash and returns a signed token.
func (s *Service) Login(password string) (string, error) {
	var cfg models.Config
	if err := s.db.First(&cfg, 1).Error; err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	claims := Claims{
		Authorized: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    "sistema-notas-posto",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// UpdatePassword re-hashes and replaces the singleton credential.
func (s *Service) UpdatePassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Config{}).Where("id = ?", 1).
		Updates(map[string]interface{}{"password_hash": string(hash), "updated_at": time.Now()}).Error
}

// ValidateToken parses and verifies a bearer token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Authorized {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
