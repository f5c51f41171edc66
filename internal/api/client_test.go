// ABOUTME: Tests for the BooksArc API client
// ABOUTME: Uses httptest servers to verify request shape and error mapping

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestListBooks_SortsNewestFirst(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Book{
			{ID: "1", Title: "Dune", CreatedAt: older},
			{ID: "2", Title: "Emma", CreatedAt: newer},
		})
	}))
	defer server.Close()

	books, err := New(server.URL).ListBooks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].ID != "2" {
		t.Errorf("expected newest book first, got id %s", books[0].ID)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such book"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).GetBook(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBook_SendsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Book{ID: "new", Title: "Dune"})
	}))
	defer server.Close()

	c := New(server.URL).WithToken("tok123")
	created, err := c.CreateBook(context.Background(), &NewBook{Title: "Dune", Author: "Herbert", Location: "Milimani"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "new" {
		t.Errorf("expected created id, got %s", created.ID)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-Id header on write")
	}
}

func TestLogin_ReturnsUserAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "jane@example.com" {
			t.Errorf("expected email in body, got %v", body)
		}
		json.NewEncoder(w).Encode(AuthResponse{
			User:  UserDetail{ID: "u1", Username: "jane", Email: "jane@example.com"},
			Token: "tok",
		})
	}))
	defer server.Close()

	auth, err := New(server.URL).Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.User.ID != "u1" || auth.Token != "tok" {
		t.Errorf("unexpected auth response: %+v", auth)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid email or password"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := New(server.URL).Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHireBook_SubscriptionRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"active subscription required"}`, http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New(server.URL).WithToken("tok").HireBook(context.Background(), "b1", &HireRequest{
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		PickupDate: "2026-09-01",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerError_SurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"database unavailable"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL).ListBooks(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "server error: database unavailable" {
		t.Errorf("unexpected error text: %q", got)
	}
}

func TestConnectionRefused(t *testing.T) {
	_, err := New("http://127.0.0.1:1").ListBooks(context.Background())
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestRequestCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(server.URL).Ping(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if err.Error() != "request canceled" {
		t.Errorf("unexpected error text: %q", err)
	}
}
