package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/savioomio/sistema-notas-posto/internal/config"
	"github.com/savioomio/sistema-notas-posto/internal/db"
	"github.com/savioomio/sistema-notas-posto/internal/events"
	"github.com/savioomio/sistema-notas-posto/internal/observability"
	"github.com/savioomio/sistema-notas-posto/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	conn, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if *migrateOnlyFlag {
		logger.Info("migrations completed; exiting as requested")
		return
	}

	hub := events.NewHub()
	handler := server.New(conn, hub, logger, cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}
