package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/splitr/backend/internal/auth"
	"github.com/splitr/backend/internal/config"
	"github.com/splitr/backend/internal/handler"
	"github.com/splitr/backend/internal/service"
	"github.com/splitr/backend/internal/storage/sqlite"
	"github.com/splitr/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	// Auth stack: bcrypt password authenticator + JWT session tokens
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Services
	authService := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	contactService := service.NewContactService(store)
	groupService := service.NewGroupService(store)
	expenseService := service.NewExpenseService(store)

	h := handler.New(authService, contactService, groupService, expenseService, jwtManager)

	slog.Info("Server starting", "address", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, h.Routes()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
