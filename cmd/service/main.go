package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesprofoma/kc-backend/internal/config"
	"github.com/salesprofoma/kc-backend/internal/mailer"
	"github.com/salesprofoma/kc-backend/internal/service"
	"github.com/salesprofoma/kc-backend/internal/store"
	"github.com/salesprofoma/kc-backend/pkg/logger"
)

// Usage example on the command line:
// > PORT=8080 DB_PATH=kc-backend.db ADMIN_TOKEN=secret OWNER_EMAIL=owner@example.com go run main.go
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not build logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if strings.EqualFold(cfg.Environment, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	// Storage that cannot be opened at all is fatal before serving traffic.
	sqlDB, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal("could not open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	leadStore, err := store.New(context.Background(), sqlDB)
	if err != nil {
		log.Fatal("could not initialize lead store", zap.Error(err))
	}
	defer leadStore.Close()

	notifier := mailer.New(cfg.Mail, cfg.Branding.BusinessName)
	server := service.New(leadStore, notifier, cfg, log)
	router := server.SetupHttpRouter()

	log.Info("listening",
		zap.Int("port", cfg.Server.Port),
		zap.String("db", cfg.Database.Path),
		zap.String("environment", cfg.Environment),
	)
	if err := router.Run(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
