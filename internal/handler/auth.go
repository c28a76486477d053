package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/middleware"
	"github.com/glowtrack/glowtrack/internal/service"
	"github.com/glowtrack/glowtrack/internal/session"
)

// Index redirects to the dashboard when signed in, the sign-in page otherwise.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if _, err := h.sessions.Get(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// SignupForm renders the registration form.
// GET /signup
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", "Sign up", nil)
}

// Signup creates a new account.
// POST /signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderWithFlash(w, http.StatusBadRequest, "signup", "Sign up",
			session.Flash{Level: "error", Message: "Invalid form submission."})
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Register(r.Context(), username, email, password)
	switch {
	case err == nil:
		// Registration signs the user straight in.
		token, err := h.sessions.Create(r.Context(), session.Session{UserID: user.ID, Username: user.Username})
		if err != nil {
			h.logger.Error("create session failed",
				slog.String("error", err.Error()),
				slog.String("request_id", middleware.GetRequestID(r.Context())),
			)
			h.renderWithFlash(w, http.StatusOK, "signin", "Sign in",
				session.Flash{Level: "success", Message: "Account created! Please sign in."})
			return
		}
		if err := h.sessions.PushFlash(r.Context(), token, session.Flash{Level: "success", Message: "Account created!"}); err != nil {
			h.logger.Error("push flash", slog.String("error", err.Error()))
		}
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrPasswordTooShort):
		h.renderWithFlash(w, http.StatusBadRequest, "signup", "Sign up",
			session.Flash{Level: "error", Message: err.Error()})
	case errors.Is(err, service.ErrCredentialsTaken):
		// Generic message so the response does not leak which field collided.
		h.renderWithFlash(w, http.StatusConflict, "signup", "Sign up",
			session.Flash{Level: "error", Message: "Could not create an account with those details."})
	default:
		h.logger.Error("register failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.renderWithFlash(w, http.StatusInternalServerError, "signup", "Sign up",
			session.Flash{Level: "error", Message: "Something went wrong. Please try again."})
	}
}

// SigninForm renders the sign-in form.
// GET /signin
func (h *Handler) SigninForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signin", "Sign in", nil)
}

// Signin authenticates the user and starts a session.
// POST /signin
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderWithFlash(w, http.StatusBadRequest, "signin", "Sign in",
			session.Flash{Level: "error", Message: "Invalid form submission."})
		return
	}

	user, err := h.auth.SignIn(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.renderWithFlash(w, http.StatusUnauthorized, "signin", "Sign in",
				session.Flash{Level: "error", Message: "Invalid email or password."})
			return
		}
		h.logger.Error("sign-in failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.renderWithFlash(w, http.StatusInternalServerError, "signin", "Sign in",
			session.Flash{Level: "error", Message: "Something went wrong. Please try again."})
		return
	}

	token, err := h.sessions.Create(r.Context(), session.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		h.logger.Error("create session failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.renderWithFlash(w, http.StatusInternalServerError, "signin", "Sign in",
			session.Flash{Level: "error", Message: "Something went wrong. Please try again."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session and clears the cookie.
// GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := auth.IdentityFromContext(r.Context()); id != nil {
		if err := h.sessions.Delete(r.Context(), id.SessionToken); err != nil {
			h.logger.Error("delete session failed", slog.String("error", err.Error()))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

// Dashboard renders the authenticated landing page.
// GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", nil)
}
