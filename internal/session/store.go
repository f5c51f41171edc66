// ABOUTME: Session store holding the authenticated identity for the whole app
// ABOUTME: Persists to a JSON record in the XDG config directory

package session

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NewOlosko23/booksarc-cli/internal/api"
)

// Identity is the logged-in user record. It is either fully populated or
// absent; the store never holds a partial identity.
type Identity struct {
	ID           string            `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	Token        string            `json:"token"`
	Subscription *api.Subscription `json:"subscription,omitempty"`
}

// valid reports whether the record is complete enough to act as a session
func (id Identity) valid() bool {
	return id.ID != "" && id.Email != "" && id.Token != ""
}

// Store is the single source of truth for "who is logged in". It is
// constructed once and passed down explicitly; every mutation replaces the
// whole identity and notifies subscribers synchronously.
type Store struct {
	configDir string
	current   *Identity
	subs      []func(*Identity)
}

// New creates a store rooted at the given config directory
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the config directory following the XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "booksarc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "booksarc")
}

func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// Load rehydrates the session from disk. Missing, malformed, incomplete, or
// expired records all mean "no session"; a bad record is removed so it is
// not re-parsed on the next start. Load never fails.
func (s *Store) Load() {
	data, err := os.ReadFile(s.sessionFile())
	if err != nil {
		s.current = nil
		return
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || !id.valid() {
		slog.Debug("discarding malformed session record", "path", s.sessionFile())
		os.Remove(s.sessionFile())
		s.current = nil
		return
	}

	if tokenExpired(id.Token) {
		slog.Debug("discarding expired session", "user", id.Email)
		os.Remove(s.sessionFile())
		s.current = nil
		return
	}

	s.current = &id
}

// Login replaces the session with the given identity, persists it, and
// notifies subscribers. Pure state transition: no network I/O happens here.
func (s *Store) Login(id Identity) {
	s.current = &id
	if err := s.persist(); err != nil {
		slog.Warn("could not persist session", "error", err)
	}
	s.notify()
}

// Logout clears the session and removes the persisted record. Calling it
// while logged out is a no-op.
func (s *Store) Logout() {
	if s.current == nil {
		os.Remove(s.sessionFile())
		return
	}
	s.current = nil
	os.Remove(s.sessionFile())
	s.notify()
}

// Current returns the identity, or nil when logged out. Side-effect-free.
func (s *Store) Current() *Identity {
	return s.current
}

// Subscribe registers a callback invoked synchronously after every session
// change. Subscribers cannot unsubscribe; they live as long as the store.
func (s *Store) Subscribe(fn func(*Identity)) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn(s.current)
	}
}

func (s *Store) persist() error {
	if err := os.MkdirAll(s.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionFile(), data, 0o600)
}

// tokenExpired inspects the JWT exp claim without verifying the signature;
// only the server holds the signing secret. Opaque tokens pass through and
// are left for the server to reject.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
