package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Postgres driver registration
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Row is a single-row query result. *sql.Row satisfies it.
type Row interface {
	Scan(dest ...any) error
	Err() error
}

// DB is the subset of database operations the repositories use.
type DB interface {
	// Exec executes a statement that returns no rows
	Exec(ctx context.Context, query string, args ...any) error
	// QueryRow executes a query expected to return at most one row
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// Client wraps the Postgres connection pool
type Client interface {
	// Conn returns the database handle used by repositories
	Conn() DB
	// Ping checks the connection to Postgres
	Ping(ctx context.Context) error
	// Close closes the connection pool
	Close() error
}

// Connection timeout for initial ping during client creation
const defaultPingTimeout = 10 * time.Second

type client struct {
	db     *sql.DB
	conn   *dbConn
	logger *zap.SugaredLogger
}

// dbConn adapts *sql.DB to the DB interface.
type dbConn struct {
	db *sql.DB
}

func (c *dbConn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func (c *dbConn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

// New creates a new Postgres client with the provided configuration.
// The connection is pinged before returning; the service should not start
// if the datastore is unreachable, as it is critical for indexing.
func New(cfg Config, sugar *zap.SugaredLogger) (Client, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if sugar != nil {
			sugar.Errorw("failed to ping Postgres", "error", err)
		}
		// Close pool to avoid resource leaks; we are already failing
		_ = db.Close()
		return nil, err
	}

	return &client{db: db, conn: &dbConn{db: db}, logger: sugar}, nil
}

func (c *client) Conn() DB {
	return c.conn
}

func (c *client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *client) Close() error {
	return c.db.Close()
}
