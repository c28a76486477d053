// Package session provides server-side session state keyed by an opaque
// cookie token. The session holds the authenticated user's identity and any
// pending flash messages; no user data lives in the cookie itself.
package session

import (
	"context"
	"errors"
)

// CookieName is the session cookie set on sign-in and cleared on sign-out.
const CookieName = "glowtrack_session"

// ErrNotFound is returned when a token has no live session.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state bound to one token.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Flash is a one-shot message rendered on the next page view.
// Level is one of "success", "error", "info".
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Manager is the session port. Redis backs it in production; Memory backs
// it in tests.
type Manager interface {
	// Create stores a new session and returns its opaque token.
	Create(ctx context.Context, sess Session) (string, error)
	// Get returns the session for a token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a session. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error
	// PushFlash queues a flash message on the session.
	PushFlash(ctx context.Context, token string, flash Flash) error
	// PopFlashes returns and clears the session's queued flash messages.
	PopFlashes(ctx context.Context, token string) ([]Flash, error)
}
