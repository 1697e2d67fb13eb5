package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenx/internal/auth"
	"tenx/internal/config"
	"tenx/internal/models"
	"tenx/internal/server"
	"tenx/internal/storage/sqlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&cfg.Database.Driver, "driver", cfg.Database.Driver, "Database driver (sqlite or postgres)")
	flag.StringVar(&cfg.Database.URL, "db", cfg.Database.URL, "sqlite file path or postgres connection URL")
	flag.StringVar(&cfg.Server.StaticDir, "static", cfg.Server.StaticDir, "Directory with built frontend")
	flag.Parse()

	logger := cfg.Log.NewLogger()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, sqlstore.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.URL}, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	manager := auth.NewManager(cfg.Auth.SessionSecret, cfg.Auth.ServiceRoleKey, cfg.Auth.SessionTTL)
	bootstrapAdmin(ctx, manager, store, cfg.Auth, logger)

	srv := server.New(store, manager, logger, server.Options{
		StaticDir:     cfg.Server.StaticDir,
		CORSOrigins:   cfg.Server.CORSOrigins,
		AnonKey:       cfg.Auth.AnonKey,
		SecureCookies: cfg.Auth.SecureCookies,
		AllowFallback: cfg.Data.FallbackEnabled,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("driver", store.Driver()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// bootstrapAdmin makes sure the configured administrator can sign in on a
// fresh database.
func bootstrapAdmin(ctx context.Context, manager *auth.Manager, store *sqlstore.Store, cfg config.AuthConfig, logger *slog.Logger) {
	if cfg.AdminPassword == "" {
		logger.Warn("admin bootstrap skipped: no admin password configured")
		return
	}
	user, created, err := manager.EnsureAdmin(ctx, store, models.AdminUserInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		FullName: cfg.AdminName,
		Role:     models.RoleSuperAdmin,
	})
	if err != nil {
		logger.Error("admin bootstrap failed", slog.String("error", err.Error()))
		return
	}
	if created {
		logger.Info("admin account created", slog.String("email", user.Email))
	}
}
