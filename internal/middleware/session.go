package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/session"
)

// SessionConfig holds dependencies for the session guard.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions session.Manager
}

// RequireSession returns middleware that resolves the session cookie and
// injects the signed-in identity into the request context. Requests without
// a valid session are redirected to the sign-in page; a stale cookie is
// cleared on the way out.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			sess, err := cfg.Sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					cfg.Logger.Error("session lookup failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
				}
				clearSessionCookie(w)
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}

			identity := &auth.Identity{
				UserID:       sess.UserID,
				Username:     sess.Username,
				SessionToken: cookie.Value,
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
