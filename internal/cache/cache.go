// ABOUTME: Read-through SQLite cache for dashboard snapshots
// ABOUTME: Holds user-detail and owned-book lists with accepted staleness

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

const (
	kindUserDetail = "user_detail"
	kindOwnedBooks = "owned_books"
)

// Cache is a read-through snapshot store. There is no invalidation policy:
// a cached snapshot is served until a forced refresh or logout clears it.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at dbPath and applies the schema.
func Open(dbPath string) (*Cache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS snapshots (
		user_id    TEXT NOT NULL,
		kind       TEXT NOT NULL,
		payload    BLOB NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, kind)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// UserDetail returns the cached user detail, fetching through on a miss or
// when force is set. cached reports whether the result came from the cache.
func (c *Cache) UserDetail(ctx context.Context, userID string, force bool, fetch func(context.Context) (*api.UserDetail, error)) (detail *api.UserDetail, cached bool, err error) {
	if !force {
		if payload := c.get(ctx, userID, kindUserDetail); payload != nil {
			var d api.UserDetail
			if err := json.Unmarshal(payload, &d); err == nil {
				return &d, true, nil
			}
			// Unreadable snapshot: fall through to a fresh fetch
		}
	}

	detail, err = fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	c.put(ctx, userID, kindUserDetail, detail)
	return detail, false, nil
}

// OwnedBooks returns the cached owned-book list, fetching through on a miss
// or when force is set.
func (c *Cache) OwnedBooks(ctx context.Context, userID string, force bool, fetch func(context.Context) ([]api.Book, error)) (books []api.Book, cached bool, err error) {
	if !force {
		if payload := c.get(ctx, userID, kindOwnedBooks); payload != nil {
			if err := json.Unmarshal(payload, &books); err == nil {
				return books, true, nil
			}
		}
	}

	books, err = fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	c.put(ctx, userID, kindOwnedBooks, books)
	return books, false, nil
}

// Clear removes every snapshot for the given user. Called on logout.
func (c *Cache) Clear(ctx context.Context, userID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM snapshots WHERE user_id = ?`, userID)
	return err
}

func (c *Cache) get(ctx context.Context, userID, kind string) []byte {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE user_id = ? AND kind = ?`,
		userID, kind).Scan(&payload)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Debug("cache read failed", "kind", kind, "error", err)
		}
		return nil
	}
	return payload
}

// put best-effort stores a snapshot; a failed write only costs the next
// reader a network round trip.
func (c *Cache) put(ctx context.Context, userID, kind string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Debug("cache marshal failed", "kind", kind, "error", err)
		return
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, kind, payload, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, kind) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		userID, kind, payload, time.Now().UTC())
	if err != nil {
		slog.Debug("cache write failed", "kind", kind, "error", err)
	}
}
