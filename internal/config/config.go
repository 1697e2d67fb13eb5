// Package config loads the process configuration: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"tenx/internal/models"
)

// ConfigPathEnv names the variable holding the optional YAML file path.
const ConfigPathEnv = "TENX_CONFIG_PATH"

// Config is built once at startup and passed to every constructor.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Data     DataConfig     `yaml:"data"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds the HTTP listener and frontend settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr" env:"TENX_ADDR"`
	StaticDir   string   `yaml:"static_dir" env:"TENX_STATIC_DIR"`
	CORSOrigins []string `yaml:"cors_origins" env:"TENX_CORS_ORIGINS" envSeparator:","`
}

// DatabaseConfig selects the backend. URL is a file path for sqlite.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"TENX_DB_DRIVER"`
	URL    string `yaml:"url" env:"TENX_DATABASE_URL"`
}

// AuthConfig holds the credentials of the single identity provider. The
// service-role key is privileged and must never reach a browser.
type AuthConfig struct {
	AnonKey        string        `yaml:"anon_key" env:"TENX_ANON_KEY"`
	ServiceRoleKey string        `yaml:"service_role_key" env:"TENX_SERVICE_ROLE_KEY"`
	SessionSecret  string        `yaml:"session_secret" env:"TENX_SESSION_SECRET"`
	SessionTTL     time.Duration `yaml:"session_ttl" env:"TENX_SESSION_TTL"`
	SecureCookies  bool          `yaml:"secure_cookies" env:"TENX_SECURE_COOKIES"`
	AdminEmail     string        `yaml:"admin_email" env:"TENX_ADMIN_EMAIL"`
	AdminPassword  string        `yaml:"admin_password" env:"TENX_ADMIN_PASSWORD"`
	AdminName      string        `yaml:"admin_name" env:"TENX_ADMIN_NAME"`
}

// DataConfig controls the read path of public pages.
type DataConfig struct {
	FallbackEnabled bool `yaml:"fallback_enabled" env:"TENX_FALLBACK_ENABLED"`
}

// LogConfig sets the slog level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" env:"TENX_LOG_LEVEL"`
	Format string `yaml:"format" env:"TENX_LOG_FORMAT"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":8080",
			StaticDir: "web/dist",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			URL:    "data/tenx.db",
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
			AdminEmail: "admin@10x.local",
			AdminName:  "System Admin",
		},
		Data: DataConfig{FallbackEnabled: true},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate reports the first setting that would keep the server from
// running safely.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database url is required")
	}
	if len(c.Auth.SessionSecret) < 16 {
		return errors.New("session secret must be at least 16 characters")
	}
	if c.Auth.ServiceRoleKey != "" && c.Auth.ServiceRoleKey == c.Auth.AnonKey {
		return errors.New("service role key must differ from the anon key")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors origin %q must be * or start with http:// or https://", origin)
		}
	}
	if len(c.Auth.AdminPassword) > models.MaxPasswordBytes {
		return fmt.Errorf("admin password must be at most %d bytes", models.MaxPasswordBytes)
	}
	return nil
}

// NewLogger builds the process logger from the log settings.
func (c LogConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
