// Package sqlite provides SQLite-based storage for the analysis history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database, applies connection pragmas and migrates the
// schema to the current version.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", db.path, err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := configure(conn, db.path == ":memory:"); err != nil {
		_ = conn.Close()
		return err
	}
	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("migrating schema: %w", err)
	}

	db.db = conn
	return nil
}

// configure applies the connection pragmas. In-memory databases cannot use WAL.
func configure(conn *sql.DB, memory bool) error {
	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// migrations are applied in order; user_version records how many ran.
var migrations = []string{
	`CREATE TABLE products (
		id                 TEXT PRIMARY KEY,
		product_name       TEXT NOT NULL,
		target_audience    TEXT NOT NULL DEFAULT '',
		main_pain          TEXT NOT NULL DEFAULT '',
		main_benefit       TEXT NOT NULL DEFAULT '',
		central_promise    TEXT NOT NULL DEFAULT '',
		communication_tone TEXT NOT NULL DEFAULT '',
		niche              TEXT NOT NULL DEFAULT '',
		headline           TEXT NOT NULL DEFAULT '',
		body               TEXT NOT NULL DEFAULT '',
		cta                TEXT NOT NULL DEFAULT '',
		briefing           TEXT NOT NULL DEFAULT '',
		source_type        TEXT NOT NULL,
		source_url         TEXT NOT NULL DEFAULT '',
		content_hash       TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL
	);
	CREATE INDEX idx_products_source_url ON products(source_url);
	CREATE INDEX idx_products_content_hash ON products(content_hash);
	CREATE INDEX idx_products_created_at ON products(created_at);`,
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
