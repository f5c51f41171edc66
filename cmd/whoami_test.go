// ABOUTME: Tests for the whoami command
// ABOUTME: Verifies session reporting and that the token never leaks

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

func TestWhoamiCommand_LoggedIn(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var buf bytes.Buffer
	exitCode := runWhoami(&buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("olosko <olosko@example.com>")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWhoamiCommand_LoggedOut(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	exitCode := runWhoami(&buf)

	if exitCode != exitFailed {
		t.Errorf("expected exit code %d, got %d", exitFailed, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not logged in.")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWhoamiCommand_JSONExcludesToken(t *testing.T) {
	setupTestEnv(t)
	store := session.New(session.DefaultConfigDir())
	store.Login(session.Identity{
		ID:       "u1",
		Username: "olosko",
		Email:    "olosko@example.com",
		Token:    "super-secret-token",
		Subscription: &api.Subscription{
			Plan:   "monthly",
			Status: "active",
		},
	})
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	exitCode := runWhoami(&buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if bytes.Contains(buf.Bytes(), []byte("super-secret-token")) {
		t.Error("token must never appear in output")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["logged_in"] != true || parsed["subscription"] != "active" {
		t.Errorf("unexpected JSON: %v", parsed)
	}
}
