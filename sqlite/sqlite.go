// Package sqlite provides SQLite-based storage for newsgrab records:
// extracted contents, failed articles awaiting catch-up, and revisit history.
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

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait before failing on lock contention from another process.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
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

// BeginTx starts a transaction. Every save that touches more than one row
// runs inside one so a record is never half written.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS contents (
			id TEXT PRIMARY KEY,
			article_id TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			url_rss TEXT NOT NULL,
			pub_ts TEXT,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			html TEXT NOT NULL,
			text_md5 TEXT NOT NULL,
			html_md5 TEXT NOT NULL,
			parser TEXT NOT NULL DEFAULT '',
			meta TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL,
			UNIQUE (url, text_md5, html_md5)
		);

		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			url_rss TEXT NOT NULL,
			pub_ts TEXT,
			meta TEXT NOT NULL DEFAULT '{}',
			response BLOB,
			response_md5 TEXT NOT NULL,
			parser TEXT NOT NULL DEFAULT '',
			parse_error TEXT NOT NULL DEFAULT '',
			attempts INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS revisits (
			id TEXT PRIMARY KEY,
			content_id TEXT NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
			source TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL,
			url_rss TEXT NOT NULL,
			pub_ts TEXT,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			html TEXT NOT NULL,
			text_md5 TEXT NOT NULL,
			html_md5 TEXT NOT NULL,
			parser TEXT NOT NULL DEFAULT '',
			meta TEXT NOT NULL DEFAULT '{}',
			changed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_contents_source ON contents(source);
		CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
		CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
		CREATE INDEX IF NOT EXISTS idx_revisits_content_id ON revisits(content_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
