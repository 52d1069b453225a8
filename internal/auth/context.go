package auth

import (
	"context"

	"github.com/rpattn/filedash/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the signed-in identity carried by a request.
type Session struct {
	Username string
	Role     domain.Role
}

// IsAdmin reports whether the session may use the admin pages.
func (s Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// ContextWithSession returns a new context that carries the authenticated session.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext retrieves the authenticated session from the context, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || s.Username == "" {
		return Session{}, false
	}
	return s, true
}
