package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

func TestConnectMigratesAndSeeds(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.sqlite")
	conn, err := Connect(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	var cfg models.Config
	if err := conn.First(&cfg, 1).Error; err != nil {
		t.Fatalf("expected seeded config row: %v", err)
	}
	if cfg.PasswordHash == DefaultPassword {
		t.Fatal("password must be stored hashed, not as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(DefaultPassword)); err != nil {
		t.Fatalf("seeded hash does not match default password: %v", err)
	}

	// Seeding again must not touch the existing row.
	if err := SeedConfig(conn); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var count int64
	if err := conn.Model(&models.Config{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single config row, got %d", count)
	}
}

func TestConnectRejectsEmptyDSN(t *testing.T) {
	if _, err := Connect("  "); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
