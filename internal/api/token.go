package api

import (
	"sync"
)

// TokenStore is the durable storage the token survives restarts in.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Logger records client activity. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// TokenSource is the single token lifecycle entry point shared by both
// HTTP clients. Setting a token persists it and injects the Authorization
// header on every subsequent request; clearing removes both.
type TokenSource struct {
	mu     sync.RWMutex
	token  string
	store  TokenStore
	logger Logger

	onUnauthorized func()
}

// TokenOption customizes TokenSource construction.
type TokenOption func(*TokenSource)

// OnUnauthorized registers the handler invoked after a 401 response has
// force-cleared the token. The hosting shell uses it to switch to the
// login view; the transport layer never navigates itself.
func OnUnauthorized(fn func()) TokenOption {
	return func(t *TokenSource) {
		if fn != nil {
			t.onUnauthorized = fn
		}
	}
}

// WithTokenLogger overrides the default no-op logger.
func WithTokenLogger(l Logger) TokenOption {
	return func(t *TokenSource) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTokenSource wires a TokenSource to durable storage.
func NewTokenSource(store TokenStore, opts ...TokenOption) *TokenSource {
	t := &TokenSource{
		store:          store,
		logger:         nopLogger{},
		onUnauthorized: func() {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Initialize reads persisted storage and re-applies the token, enabling
// session resumption across restarts. It returns the restored token, or ""
// when none is stored.
func (t *TokenSource) Initialize() (string, error) {
	if t == nil || t.store == nil {
		return "", nil
	}
	token, err := t.store.Token()
	if err != nil {
		return "", err
	}
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
	return token, nil
}

// SetToken persists the token and applies it to both clients. An empty
// token clears storage and the header instead.
func (t *TokenSource) SetToken(token string) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
	if t.store == nil {
		return nil
	}
	if token == "" {
		return t.store.ClearToken()
	}
	return t.store.SetToken(token)
}

// Clear removes the token from storage and from future requests.
func (t *TokenSource) Clear() error {
	return t.SetToken("")
}

// Current returns the token applied to outgoing requests, or "".
func (t *TokenSource) Current() string {
	if t == nil {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// handleUnauthorized force-clears the token and notifies the shell. Called
// once per 401 response, from whichever client observed it.
func (t *TokenSource) handleUnauthorized() {
	if t == nil {
		return
	}
	if err := t.Clear(); err != nil {
		t.logger.Printf("api: clear token after 401: %v", err)
	}
	if t.onUnauthorized != nil {
		t.onUnauthorized()
	}
}
