// ABOUTME: Tests for the show command
// ABOUTME: Verifies book detail output and not-found handling

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

func TestShowCommand_Success(t *testing.T) {
	setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books/b1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.Book{
			ID:          "b1",
			Title:       "The Go Programming Language",
			Author:      "Donovan and Kernighan",
			Category:    "Programming",
			Location:    "Nairobi",
			Available:   true,
			OwnerName:   "olosko",
			Description: "A tour of Go.",
		})
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runShow(context.Background(), &buf, "b1")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"The Go Programming Language", "Donovan and Kernighan", "Nairobi", "olosko"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	setupTestEnv(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runShow(context.Background(), &buf, "nope")

	if exitCode != exitFailed {
		t.Errorf("expected exit code %d, got %d", exitFailed, exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Book not found.")) {
		t.Errorf("expected not-found message, got %q", buf.String())
	}
}

func TestShowCommand_ServerDown(t *testing.T) {
	setupTestEnv(t)
	apiURL = "http://127.0.0.1:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runShow(context.Background(), &buf, "b1")

	if exitCode != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, exitCode)
	}
}
