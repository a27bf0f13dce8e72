package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/phrazzld/vocabcards/internal/config"
	"github.com/phrazzld/vocabcards/internal/platform/logger"
)

// DB owns the connection pool of one SQLite database file and can replace it
// when the handle becomes unusable.
type DB struct {
	mu     sync.RWMutex
	conn   *sql.DB
	dsn    string
	logger *slog.Logger
}

// Open opens (creating if needed) the database file named by cfg. It does not
// touch the schema; call EnsureSchema before building stores.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}
	registerDriver()

	d := &DB{
		dsn:    buildDSN(cfg),
		logger: log.With(slog.String("component", "sqlite")),
	}
	conn, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}
	d.conn = conn

	d.logger.Debug("database opened", slog.String("path", cfg.Path))
	return d, nil
}

func buildDSN(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeoutMS))
	return "file:" + cfg.Path + "?" + q.Encode()
}

func (d *DB) connect(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open(DriverName, d.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer: one connection keeps transactions and foreign-key
	// pragmas on the same handle.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// SQL returns the current connection pool.
func (d *DB) SQL() *sql.DB {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.conn
}

// Close closes the current connection pool.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// Reopen replaces the connection pool with a fresh one.
func (d *DB) Reopen(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, d.logger)

	conn, err := d.connect(ctx)
	if err != nil {
		log.Error("failed to reopen database", slog.String("error", err.Error()))
		return err
	}

	d.mu.Lock()
	old := d.conn
	d.conn = conn
	d.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	log.Info("database reopened")
	return nil
}
