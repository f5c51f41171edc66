// ABOUTME: Tests for the dashboard snapshot cache
// ABOUTME: Verifies read-through behavior, forced refresh, and logout clearing

package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestUserDetail_ReadThrough(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (*api.UserDetail, error) {
		fetches++
		return &api.UserDetail{ID: "u1", Username: "jane", Email: "jane@example.com"}, nil
	}

	// Miss populates
	detail, cached, err := c.UserDetail(ctx, "u1", false, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached {
		t.Error("first read should not be cached")
	}
	if detail.Username != "jane" {
		t.Errorf("unexpected detail: %+v", detail)
	}

	// Hit serves the snapshot without fetching
	detail, cached, err = c.UserDetail(ctx, "u1", false, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cached {
		t.Error("second read should be cached")
	}
	if detail.Username != "jane" {
		t.Errorf("unexpected cached detail: %+v", detail)
	}
	if fetches != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches)
	}
}

func TestUserDetail_ForceRefetches(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) (*api.UserDetail, error) {
		fetches++
		return &api.UserDetail{ID: "u1", Username: "jane"}, nil
	}

	c.UserDetail(ctx, "u1", false, fetch)
	_, cached, _ := c.UserDetail(ctx, "u1", true, fetch)
	if cached {
		t.Error("forced read should not be served from cache")
	}
	if fetches != 2 {
		t.Errorf("expected 2 fetches, got %d", fetches)
	}
}

func TestUserDetail_FetchErrorNotCached(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	boom := errors.New("server down")
	_, _, err := c.UserDetail(ctx, "u1", false, func(context.Context) (*api.UserDetail, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// Next read must try the fetch again, not serve a phantom snapshot
	fetched := false
	_, cached, err := c.UserDetail(ctx, "u1", false, func(context.Context) (*api.UserDetail, error) {
		fetched = true
		return &api.UserDetail{ID: "u1"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached || !fetched {
		t.Error("expected fresh fetch after a failed one")
	}
}

func TestOwnedBooks_ReadThrough(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(context.Context) ([]api.Book, error) {
		fetches++
		return []api.Book{{ID: "b1", Title: "Dune"}, {ID: "b2", Title: "Emma"}}, nil
	}

	books, cached, err := c.OwnedBooks(ctx, "u1", false, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached || len(books) != 2 {
		t.Fatalf("unexpected first read: cached=%v len=%d", cached, len(books))
	}

	books, cached, err = c.OwnedBooks(ctx, "u1", false, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cached || len(books) != 2 || books[0].Title != "Dune" {
		t.Errorf("unexpected cached read: cached=%v books=%+v", cached, books)
	}
	if fetches != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches)
	}
}

func TestClear_RemovesUserSnapshots(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	c.UserDetail(ctx, "u1", false, func(context.Context) (*api.UserDetail, error) {
		return &api.UserDetail{ID: "u1"}, nil
	})
	c.OwnedBooks(ctx, "u2", false, func(context.Context) ([]api.Book, error) {
		return []api.Book{{ID: "b1"}}, nil
	})

	if err := c.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	// u1 misses, u2 still hits
	fetched := false
	_, cached, _ := c.UserDetail(ctx, "u1", false, func(context.Context) (*api.UserDetail, error) {
		fetched = true
		return &api.UserDetail{ID: "u1"}, nil
	})
	if cached || !fetched {
		t.Error("expected u1 snapshot to be cleared")
	}

	_, cached, _ = c.OwnedBooks(ctx, "u2", false, func(context.Context) ([]api.Book, error) {
		t.Error("u2 snapshot should have survived")
		return nil, nil
	})
	if !cached {
		t.Error("expected u2 snapshot to be cached")
	}
}
