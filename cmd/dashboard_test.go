// ABOUTME: Tests for the dashboard command
// ABOUTME: Verifies gating, the read-through cache, and the refresh flag

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

func dashboardServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/users/u1":
			json.NewEncoder(w).Encode(api.UserDetail{
				ID:       "u1",
				Username: "olosko",
				Email:    "olosko@example.com",
				Subscription: &api.Subscription{
					Plan:   "monthly",
					Status: "active",
				},
			})
		case "/api/users/u1/books":
			json.NewEncoder(w).Encode([]api.Book{
				{ID: "b1", Title: "My Listed Book", Author: "Me", Available: true},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestDashboardCommand_RequiresLogin(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	exitCode := runDashboard(context.Background(), &buf)

	if exitCode != exitBlocked {
		t.Errorf("expected exit code %d, got %d", exitBlocked, exitCode)
	}
}

func TestDashboardCommand_Success(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var hits atomic.Int64
	server := dashboardServer(t, &hits)
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runDashboard(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	for _, want := range []string{"olosko <olosko@example.com>", "monthly", "My Listed Book"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 fetches on a cold cache, got %d", hits.Load())
	}
}

func TestDashboardCommand_SecondRunServedFromCache(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var hits atomic.Int64
	server := dashboardServer(t, &hits)
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var first bytes.Buffer
	if exitCode := runDashboard(context.Background(), &first); exitCode != 0 {
		t.Fatalf("first run failed: %d", exitCode)
	}

	var second bytes.Buffer
	if exitCode := runDashboard(context.Background(), &second); exitCode != 0 {
		t.Fatalf("second run failed: %d", exitCode)
	}

	if hits.Load() != 2 {
		t.Errorf("second run should not hit the network, got %d total fetches", hits.Load())
	}
	if !bytes.Contains(second.Bytes(), []byte("cached")) {
		t.Errorf("expected cache notice on the second run, got %q", second.String())
	}
}

func TestDashboardCommand_RefreshBypassesCache(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var hits atomic.Int64
	server := dashboardServer(t, &hits)
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var first bytes.Buffer
	runDashboard(context.Background(), &first)

	dashboardRefresh = true
	defer func() { dashboardRefresh = false }()

	var second bytes.Buffer
	if exitCode := runDashboard(context.Background(), &second); exitCode != 0 {
		t.Fatalf("refresh run failed: %d", exitCode)
	}
	if hits.Load() != 4 {
		t.Errorf("refresh should refetch both snapshots, got %d total fetches", hits.Load())
	}
}

func TestDashboardCommand_ServerDownColdCache(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)
	apiURL = "http://127.0.0.1:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runDashboard(context.Background(), &buf)

	if exitCode != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Failed to load dashboard.")) {
		t.Errorf("expected generic failure message, got %q", buf.String())
	}
}

func TestDashboardCommand_JSON(t *testing.T) {
	setupTestEnv(t)
	loginTestUser(t)

	var hits atomic.Int64
	server := dashboardServer(t, &hits)
	defer server.Close()
	apiURL = server.URL
	jsonOutput = true
	defer func() { apiURL = ""; jsonOutput = false }()

	var buf bytes.Buffer
	exitCode := runDashboard(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var parsed dashboardOutput
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.User == nil || parsed.User.ID != "u1" || len(parsed.Books) != 1 {
		t.Errorf("unexpected JSON payload: %+v", parsed)
	}
}
