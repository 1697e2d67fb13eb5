// Command tenxctl runs maintenance tasks against the tenx database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tenx/internal/auth"
	"tenx/internal/config"
	"tenx/internal/fallback"
	"tenx/internal/models"
	"tenx/internal/storage/sqlstore"
)

const usage = `usage: tenxctl <command> [flags]

commands:
  migrate        apply database migrations
  create-admin   add an admin account (-email, -password, -name, -role)
  seed           load the built-in snapshot into an empty database
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", slog.String("command", os.Args[1]), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.StringVar(&cfg.Database.Driver, "driver", cfg.Database.Driver, "Database driver (sqlite or postgres)")
	fs.StringVar(&cfg.Database.URL, "db", cfg.Database.URL, "sqlite file path or postgres connection URL")

	var in models.AdminUserInput
	if cmd == "create-admin" {
		fs.StringVar(&in.Email, "email", "", "account email")
		fs.StringVar(&in.Password, "password", "", "account password (at least 8 characters)")
		fs.StringVar(&in.FullName, "name", "", "display name")
		fs.StringVar(&in.Role, "role", models.RoleAdmin, "admin or super_admin")
	}

	switch cmd {
	case "migrate", "create-admin", "seed":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sqlstore.Open(ctx, sqlstore.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.URL}, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	switch cmd {
	case "migrate":
		logger.Info("migrations applied", slog.String("driver", store.Driver()))
	case "create-admin":
		manager := auth.NewManager(cfg.Auth.SessionSecret, cfg.Auth.ServiceRoleKey, cfg.Auth.SessionTTL)
		user, created, err := manager.EnsureAdmin(ctx, store, in)
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("admin user %s already exists", user.Email)
		}
		logger.Info("admin account created", slog.String("email", user.Email), slog.String("role", user.Role))
	case "seed":
		res, err := fallback.Seed(ctx, store)
		if err != nil {
			return err
		}
		logger.Info("snapshot seeded",
			slog.String("snapshot", fallback.Version),
			slog.Int("projects", res.Projects),
			slog.Int("global_metrics", res.GlobalMetrics))
	}
	return nil
}
