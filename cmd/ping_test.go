// ABOUTME: Tests for the ping command
// ABOUTME: Verifies reachability reporting and exit codes

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPingCommand_Up(t *testing.T) {
	setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runPing(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("is up")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPingCommand_Down(t *testing.T) {
	setupTestEnv(t)
	apiURL = "http://127.0.0.1:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runPing(context.Background(), &buf)

	if exitCode != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not responding")) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPingCommand_ServerError(t *testing.T) {
	setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runPing(context.Background(), &buf)

	if exitCode != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, exitCode)
	}
}
