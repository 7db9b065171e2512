// Package database owns the MySQL connection and query execution.
//
// The connection is a pooled *sql.DB shared by concurrent requests. When no
// database is reachable at startup the assistant runs in test mode: a canned
// executor stands in for the real one and produces the same result shape.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rawihq/rawi/internal/config"
)

// Open connects to MySQL using the supplied settings and verifies the
// connection with a bounded ping.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Host
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("opening mysql handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}

	slog.Info("connected to mysql", "host", cfg.Host, "database", cfg.Name)
	return db, nil
}

// Result is the tabular outcome of one query: row-major values plus a
// parallel column-name list.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result carries no rows.
func (r Result) Empty() bool { return len(r.Rows) == 0 }

// validate rejects results whose rows disagree with the column list width.
func (r Result) validate() error {
	for i, row := range r.Rows {
		if len(row) != len(r.Columns) {
			return fmt.Errorf("row %d has %d values for %d columns", i, len(row), len(r.Columns))
		}
	}
	return nil
}

// Executor runs an extracted SQL statement and returns tabular results.
type Executor interface {
	Query(ctx context.Context, query string) (Result, error)
}

// Live executes statements against a real database connection.
type Live struct {
	db *sql.DB
}

// NewLive creates an executor over an open connection pool.
func NewLive(db *sql.DB) *Live {
	return &Live{db: db}
}

// Query executes the statement verbatim, exactly once, no retry. The
// statement comes from the controlled prompt pipeline, not from end users;
// that trust boundary is why no sanitization happens here.
func (e *Live) Query(ctx context.Context, query string) (Result, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("reading column names: %w", err)
	}

	result := Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, fmt.Errorf("scanning row: %w", err)
		}
		// The mysql driver hands back []byte for text columns.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterating rows: %w", err)
	}
	if err := result.validate(); err != nil {
		return Result{}, fmt.Errorf("malformed result: %w", err)
	}
	return result, nil
}

// Canned is the test-mode executor. It never touches a database and returns
// a fixed dataset with the same shape a live execution would produce.
type Canned struct{}

// NewCanned creates the test-mode executor.
func NewCanned() *Canned { return &Canned{} }

// Query logs the statement that would have run and returns the fixed dataset.
func (e *Canned) Query(ctx context.Context, query string) (Result, error) {
	slog.Info("test mode: skipping execution", "query", query)
	return Result{
		Columns: []string{"product_name", "price", "category"},
		Rows: [][]any{
			{"Product A", 100, "Electronics"},
			{"Product B", 200, "Home Goods"},
		},
	}, nil
}
