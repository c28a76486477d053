package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/glowtrack/glowtrack/internal/cache"
)

// RateLimitConfig holds configuration for sign-in rate limiting.
type RateLimitConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache
	// Enabled toggles the limiter. When false (or Cache is nil) the
	// middleware is a no-op, which is what the in-memory dev setup uses.
	Enabled bool
	// Attempts is the number of sign-in attempts allowed per Window per client.
	Attempts int
	Window   time.Duration
}

// SigninRateLimit returns middleware that limits sign-in attempts per client IP.
// Applied only to the credential-checking route; failures fail open so a Redis
// outage never locks users out.
func SigninRateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || cfg.Cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)

			allowed, err := cfg.Cache.CheckSigninLimit(r.Context(), ip, cfg.Attempts, cfg.Window)
			if err != nil {
				cfg.Logger.Error("sign-in rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("ip", ip),
				)
				// Fail open - allow request
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				cfg.Logger.Warn("sign-in rate limit exceeded",
					slog.String("ip", ip),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				http.Error(w, "Too many sign-in attempts. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers for proxied requests.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For first (may contain multiple IPs)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP (client IP)
		for i := range xff {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
