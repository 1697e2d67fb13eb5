package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Options selects the backend. For sqlite DSN is a file path; for postgres
// it is a connection URL.
type Options struct {
	Driver string
	DSN    string
}

// Store wraps access to the SQL database and exposes high level helpers.
type Store struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
	now    func() time.Time
}

// Open connects to the configured database and runs the migrations.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("empty database dsn")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var (
		conn *sql.DB
		err  error
	)
	switch opts.Driver {
	case DriverSQLite, "":
		opts.Driver = DriverSQLite
		if err := ensureDir(opts.DSN); err != nil {
			return nil, err
		}
		conn, err = sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", opts.DSN))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	case DriverPostgres:
		conn, err = sql.Open("pgx", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(2)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", opts.Driver, err)
	}

	s := &Store{db: conn, driver: opts.Driver, logger: logger, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(ctx, opts); err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info("database ready", slog.String("driver", opts.Driver))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver reports which backend the store talks to.
func (s *Store) Driver() string {
	return s.driver
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// migrate applies the embedded goose migrations for the store's dialect.
// sqlite files are locked so the server and tenxctl never migrate the same
// file at once.
func (s *Store) migrate(ctx context.Context, opts Options) error {
	dialect, dir := "postgres", "migrations/postgres"
	if s.driver == DriverSQLite {
		dialect, dir = "sqlite3", "migrations/sqlite"

		lock := flock.New(opts.DSN + ".lock")
		locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
		if err != nil {
			return fmt.Errorf("lock database for migration: %w", err)
		}
		if !locked {
			return fmt.Errorf("lock database for migration: %s is busy", opts.DSN)
		}
		defer func() { _ = lock.Unlock() }()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, dir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders into $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// List columns are stored as JSON arrays in TEXT so both dialects share one
// encoding.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	list := []string{}
	if strings.TrimSpace(raw) == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
