// Package session holds the storefront's per-browser authentication state
// and cart badge counter.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
)

const (
	authKey = "auth"
	cartKey = "cart"
)

// ErrEmptyToken is returned when logging in without a token.
var ErrEmptyToken = errors.New("session: empty token")

type authState struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"token"`
}

// Session is the authentication state of one browser session. A logged in
// session always holds a token, but the token may have expired since.
type Session struct {
	storage   Storage
	namespace string
	now       func() time.Time

	mu    sync.RWMutex
	state authState
	cart  *CartCounter
}

// Option customizes a Session.
type Option func(*Session)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open binds a session to namespace and rehydrates it from storage.
func Open(ctx context.Context, storage Storage, namespace string, opts ...Option) (*Session, error) {
	s := &Session{storage: storage, namespace: namespace, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.state = state

	cart, err := openCartCounter(ctx, storage, namespace)
	if err != nil {
		return nil, err
	}
	s.cart = cart
	return s, nil
}

func (s *Session) load(ctx context.Context) (authState, error) {
	raw, ok, err := s.storage.Get(ctx, s.namespace, authKey)
	if err != nil {
		return authState{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return authState{}, nil
	}
	var state authState
	if err := json.Unmarshal(raw, &state); err != nil || (state.IsLoggedIn && state.Token == "") {
		// A corrupt record reads as logged out.
		return authState{}, nil
	}
	return state, nil
}

// Namespace identifies the browser session.
func (s *Session) Namespace() string {
	return s.namespace
}

// Cart returns the cart badge counter stored alongside the session.
func (s *Session) Cart() *CartCounter {
	return s.cart
}

// Login records token as the current credential and persists it.
func (s *Session) Login(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	state := authState{IsLoggedIn: true, Token: token}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, s.namespace, authKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.state = state
	return nil
}

// Logout clears the credential. Other state in the namespace, such as the
// cart counter, is left alone. Calling it repeatedly is harmless.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = authState{}
	if err := s.storage.Delete(ctx, s.namespace, authKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsLoggedIn reports the login flag, which can be stale.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoggedIn
}

// Token returns the in-memory token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// PersistedToken reads the token straight from storage.
func (s *Session) PersistedToken(ctx context.Context) (string, error) {
	state, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return state.Token, nil
}

// CurrentRole decodes the role of the stored token.
func (s *Session) CurrentRole() (domain.Role, bool) {
	return auth.DecodeRole(s.Token())
}

// IsValid reports whether the stored token is still unexpired. An expired or
// undecodable token logs the session out.
func (s *Session) IsValid(ctx context.Context) (bool, error) {
	token := s.Token()
	if token != "" && !auth.IsExpired(token, s.now()) {
		return true, nil
	}
	return false, s.Logout(ctx)
}
