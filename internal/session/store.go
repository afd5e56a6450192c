// Package session owns the authentication token lifecycle. The token is the
// only durable client state; this store is the only writer of it.
package session

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/validate"
)

// Store tracks the logged-in/logged-out state via a persisted bearer token.
// IsAuthenticated means exactly "a token is persisted"; the first 401 from
// the API is the real validity check.
type Store struct {
	mu        sync.Mutex
	path      string
	token     string
	client    *api.Client
	onExpired func()
}

// New creates a Store reading any previously persisted token from path.
func New(path string) *Store {
	s := &Store{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

// Bind attaches the API client used for the auth endpoints. Set after the
// client is built, since the client also reads tokens from this store.
func (s *Store) Bind(client *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// SetExpiredHook registers the redirect-to-login action fired when a 401
// invalidates the session.
func (s *Store) SetExpiredHook(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Token implements api.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a token is currently persisted.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a token and persists it. On failure the
// store stays logged out.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validate.Credentials(email, password); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp loginResponse
	if err := s.client.PostForm(ctx, "/auth/login", form, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login response carried no token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.AccessToken
	return s.persistLocked()
}

type registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates a new user. It does not log in.
func (s *Store) Register(ctx context.Context, email, password, fullName string) error {
	if err := validate.Registration(email, password, fullName); err != nil {
		return err
	}
	return s.client.Post(ctx, "/auth/register", registration{Email: email, Password: password, FullName: fullName}, nil)
}

// Logout clears the persisted token unconditionally. No network call is
// made.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

// Invalidate handles a 401: it clears the token and fires the expired hook.
// Firing happens at most once per logged-in session; invalidating a
// logged-out store is a no-op.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	_ = os.Remove(s.path)
	hook := s.onExpired
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(s.token), 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}
