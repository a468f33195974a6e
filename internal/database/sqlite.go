package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/classtrack/attendance-service/internal/config"
)

// NewSQLite opens (creating if absent) the embedded store file with WAL
// journaling and foreign keys enforced. The pool is pinned to a single
// connection: SQLite is a single-writer store and every multi-statement
// operation in the repositories relies on running against one connection.
func NewSQLite(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	return db, nil
}

// DSN builds the mattn/go-sqlite3 connection string for the configured
// store file.
func DSN(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeout.Milliseconds()))

	return fmt.Sprintf("file:%s?%s", cfg.Path, q.Encode())
}
