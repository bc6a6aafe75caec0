package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/88maurosls/asics/internal/model"
)

// Cache is a local SQLite mirror of the remote classification store. It is
// refreshed after every successful hydrate and read back when the remote
// store is unreachable, so an outage degrades to the last known mapping
// instead of an empty one.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// NewCache opens (or creates) the cache database at dbPath.
func NewCache(dbPath string) (*Cache, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}
	if err := cache.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return cache, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS classifications (
			article TEXT NOT NULL,
			color TEXT NOT NULL,
			label TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (article, color)
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate cache schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Replace overwrites the cached mapping with a freshly hydrated one.
func (c *Cache) Replace(ctx context.Context, entries model.ClassificationSet) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM classifications`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	for key, label := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO classifications (article, color, label)
			VALUES (?, ?, ?)
			ON CONFLICT(article, color) DO UPDATE SET
				label = excluded.label,
				updated_at = CURRENT_TIMESTAMP
		`, key.Article, key.Color, string(label)); err != nil {
			return fmt.Errorf("failed to cache classification: %w", err)
		}
	}

	return tx.Commit()
}

// GetAll reads the whole cached mapping. Labels are canonicalized the same
// way hydrated ones are, so stale or hand-copied cache rows cannot carry an
// unknown label.
func (c *Cache) GetAll(ctx context.Context) (model.ClassificationSet, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT article, color, label FROM classifications`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(model.ClassificationSet)
	for rows.Next() {
		var article, color, label string
		if err := rows.Scan(&article, &color, &label); err != nil {
			return nil, fmt.Errorf("failed to scan cached classification: %w", err)
		}
		entries[model.ClassificationKey{Article: article, Color: color}] = model.ParseLabel(label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache: %w", err)
	}

	return entries, nil
}
