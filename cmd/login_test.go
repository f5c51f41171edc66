// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies session persistence, gating, and failure paths

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
	"github.com/NewOlosko23/booksarc-cli/internal/session"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)

		if creds["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(api.ErrorResponse{Message: "invalid credentials"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AuthResponse{
			User: api.UserDetail{
				ID:       "u1",
				Username: "olosko",
				Email:    creds["email"],
			},
			Token: "issued-token",
		})
	}))
}

func TestLoginCommand_Success(t *testing.T) {
	setupTestEnv(t)
	server := authServer(t)
	defer server.Close()
	apiURL = server.URL
	loginEmail = "olosko@example.com"
	loginPassword = "secret1"
	defer func() { apiURL = ""; loginEmail = ""; loginPassword = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, strings.NewReader(""))

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}

	store := session.New(session.DefaultConfigDir())
	store.Load()
	id := store.Current()
	if id == nil {
		t.Fatal("expected a persisted session")
	}
	if id.Token != "issued-token" || id.Email != "olosko@example.com" {
		t.Errorf("unexpected session record: %+v", id)
	}
}

func TestLoginCommand_Prompted(t *testing.T) {
	setupTestEnv(t)
	server := authServer(t)
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	input := strings.NewReader("olosko@example.com\nsecret1\n")
	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, input)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Email: ")) {
		t.Error("expected email prompt")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Logged in as olosko@example.com.")) {
		t.Errorf("second prompt did not receive its line: %q", buf.String())
	}

	store := session.New(session.DefaultConfigDir())
	store.Load()
	if id := store.Current(); id == nil || id.Token != "issued-token" {
		t.Error("expected a persisted session from the prompted flow")
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	setupTestEnv(t)
	server := authServer(t)
	defer server.Close()
	apiURL = server.URL
	loginEmail = "olosko@example.com"
	loginPassword = "wrong"
	defer func() { apiURL = ""; loginEmail = ""; loginPassword = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, strings.NewReader(""))

	if exitCode != exitFailed {
		t.Errorf("expected exit code %d, got %d", exitFailed, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Invalid email or password.")) {
		t.Errorf("expected the invalid-credentials message, got %q", buf.String())
	}

	store := session.New(session.DefaultConfigDir())
	store.Load()
	if store.Current() != nil {
		t.Error("no session should be persisted after a failed login")
	}
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, strings.NewReader(""))

	if exitCode != exitBlocked {
		t.Errorf("expected exit code %d, got %d", exitBlocked, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Already logged in")) {
		t.Errorf("expected already-logged-in message, got %q", buf.String())
	}
}

func TestLogoutCommand(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var buf bytes.Buffer
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Logged out olosko@example.com.")) {
		t.Errorf("unexpected output: %q", buf.String())
	}

	store := session.New(session.DefaultConfigDir())
	store.Load()
	if store.Current() != nil {
		t.Error("expected session cleared")
	}
}

func TestLogoutCommand_Idempotent(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Fatalf("logout while logged out should still succeed, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not logged in.")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
