package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
	driver string
	logger *zap.Logger
}

// Config holds database configuration
type Config struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Scanner is satisfied by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// NewConnection opens the store described by config and verifies it answers
func NewConnection(ctx context.Context, config *Config, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		dsn      string
		poolSize = config.MaxOpenConns
	)
	switch config.Driver {
	case DriverSQLite:
		if dir := filepath.Dir(config.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = sqliteDSN(config.Path)
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY churn
		poolSize = 1
	case DriverPostgres:
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
		)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if poolSize > 0 {
		db.SetMaxOpenConns(poolSize)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected",
		zap.String("driver", config.Driver),
		zap.String("target", config.target()),
		zap.Int("max_open_conns", poolSize),
	)

	return &DB{DB: db, driver: config.Driver, logger: logger}, nil
}

func (c *Config) target() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("%s:%s/%s", c.Host, c.Port, c.DBName)
}

func sqliteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Driver returns the name of the underlying driver
func (db *DB) Driver() string {
	return db.driver
}

// QueryAll runs a parameterized query and hands every row to scan
func (db *DB) QueryAll(ctx context.Context, scan func(Scanner) error, query string, args ...any) error {
	rows, err := db.QueryContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

// QueryOne runs a parameterized query and scans its first row. It reports
// false without an error when the query yields no rows.
func (db *DB) QueryOne(ctx context.Context, scan func(Scanner) error, query string, args ...any) (bool, error) {
	err := scan(db.QueryRowContext(ctx, db.Rebind(query), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, db.classify(err)
	}
	return true, nil
}

// ExecAndCommit runs a single data-mutating statement. Outside an explicit
// transaction every statement commits on its own.
func (db *DB) ExecAndCommit(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return nil, db.classify(err)
	}
	return res, nil
}

// Rebind rewrites '?' placeholders into the driver's native form
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) classify(err error) error {
	if constraint, ok := uniqueViolation(err); ok {
		return &ConflictError{Constraint: constraint, Err: err}
	}
	return err
}
