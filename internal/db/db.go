package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

// DefaultPassword seeds the config row on first start. The row stores only the
// bcrypt hash, never the plaintext.
const DefaultPassword = "123456"

// Connect opens the store named by dsn, migrates the schema and guarantees the
// singleton config row exists. A dsn beginning with postgres:// (or
// postgresql://) selects the postgres driver; anything else is treated as a
// sqlite file path.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("DATABASE_DSN vazio, verifique a configuração do ambiente")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	if err := SeedConfig(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates the four tables.
func Migrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.Config{}, &models.Client{}, &models.Invoice{}, &models.InvoiceProduct{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// SeedConfig inserts the singleton credential row when absent.
func SeedConfig(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Config{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return conn.Create(&models.Config{ID: 1, PasswordHash: string(hash)}).Error
}
