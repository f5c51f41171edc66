// ABOUTME: Shared helpers for command tests
// ABOUTME: Isolates XDG directories and seeds sessions per test

package cmd

import (
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

// setupTestEnv points the config and data directories at per-test temp
// dirs so sessions and caches never leak between tests
func setupTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

// loginTestUser persists a complete session for the current test env
func loginTestUser(t *testing.T) session.Identity {
	t.Helper()
	id := session.Identity{
		ID:       "u1",
		Username: "olosko",
		Email:    "olosko@example.com",
		Token:    "opaque-token",
	}
	store := session.New(session.DefaultConfigDir())
	store.Login(id)
	return id
}
