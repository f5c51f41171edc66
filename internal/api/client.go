// ABOUTME: HTTP client for the BooksArc book-lending API
// ABOUTME: Wraps REST calls with typed models and CLI-friendly errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Client is the API client for the BooksArc backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that sends the given bearer token
func (c *Client) WithToken(token string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		token:      token,
		httpClient: c.httpClient,
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Book is the canonical catalog record as served by GET /api/books
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location"`
	Available   bool      `json:"available"`
	CoverURL    string    `json:"coverUrl,omitempty"`
	OwnerID     string    `json:"ownerId,omitempty"`
	OwnerName   string    `json:"ownerName,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewBook is the payload for POST /api/books
type NewBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	CoverImage  string `json:"coverImage,omitempty"` // data URL, already resized
}

// Subscription describes a user's lending plan as the server reports it
type Subscription struct {
	Plan   string `json:"plan,omitempty"`
	Status string `json:"status,omitempty"`
}

// UserDetail represents GET /api/users/{id}
type UserDetail struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	Subscription *Subscription `json:"subscription,omitempty"`
	CreatedAt    time.Time     `json:"createdAt,omitempty"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User  UserDetail `json:"user"`
	Token string     `json:"token"`
}

// HireRequest is the payload for POST /api/hire/{bookId}
type HireRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	PickupDate string `json:"pickupDate"` // YYYY-MM-DD
	Notes      string `json:"notes,omitempty"`
}

// HireReceipt echoes the created hire request
type HireReceipt struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Message string `json:"message"`
}

// Ping issues a bare GET against the API root. The hosting tier spins the
// server down when idle, so a ping both checks reachability and warms it up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

// ListBooks calls GET /api/books. The catalog contract is newest-first;
// the client sorts rather than trusting the server's ordering.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/api/books", &books); err != nil {
		return nil, err
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// GetBook calls GET /api/books/{id}
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.get(ctx, "/api/books/"+id, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook calls POST /api/books (authenticated)
func (c *Client) CreateBook(ctx context.Context, input *NewBook) (*Book, error) {
	var created Book
	if err := c.post(ctx, "/api/books", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var auth AuthResponse
	if err := c.post(ctx, "/api/auth/login", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var auth AuthResponse
	if err := c.post(ctx, "/api/auth/register", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// HireBook calls POST /api/hire/{bookId} (authenticated)
func (c *Client) HireBook(ctx context.Context, bookID string, input *HireRequest) (*HireReceipt, error) {
	var receipt HireReceipt
	if err := c.post(ctx, "/api/hire/"+bookID, input, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// User calls GET /api/users/{id} (authenticated)
func (c *Client) User(ctx context.Context, id string) (*UserDetail, error) {
	var user UserDetail
	if err := c.get(ctx, "/api/users/"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserBooks calls GET /api/users/{id}/books (authenticated)
func (c *Client) UserBooks(ctx context.Context, id string) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/api/users/"+id+"/books", &books); err != nil {
		return nil, err
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// ForgotPassword calls POST /api/password/forgot-password
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/api/password/forgot-password", body, nil)
}

// ResetPassword calls POST /api/password/reset-password/{token}
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"password": newPassword}
	return c.post(ctx, "/api/password/reset-password/"+token, body, nil)
}

// get issues a GET request and decodes the response into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, false)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// post issues a POST request with a JSON body; out may be nil when the
// response body is irrelevant
func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, true)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

// setHeaders applies auth and tracing headers. Writes get a request id so
// the server can dedupe a retried submission.
func (c *Client) setHeaders(req *http.Request, write bool) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if write {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to server at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, errResp.Message)
		}
		return ErrUnauthorized
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("server error: %s", errResp.Message)
}
