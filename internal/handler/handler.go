// Package handler provides the HTTP handlers for the GlowTrack web app.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/service"
	"github.com/glowtrack/glowtrack/internal/session"
	"github.com/glowtrack/glowtrack/internal/web"
)

// Handler wraps application dependencies for HTTP handlers.
type Handler struct {
	logger      *slog.Logger
	views       *web.Views
	sessions    session.Manager
	auth        *service.AuthService
	routines    *service.RoutineService
	completions *service.CompletionService
	reminders   *service.ReminderService
	selfies     *service.SelfieService
}

// Config collects the Handler dependencies.
type Config struct {
	Logger      *slog.Logger
	Views       *web.Views
	Sessions    session.Manager
	Auth        *service.AuthService
	Routines    *service.RoutineService
	Completions *service.CompletionService
	Reminders   *service.ReminderService
	Selfies     *service.SelfieService
}

// New creates a new Handler instance.
func New(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		views:       cfg.Views,
		sessions:    cfg.Sessions,
		auth:        cfg.Auth,
		routines:    cfg.Routines,
		completions: cfg.Completions,
		reminders:   cfg.Reminders,
		selfies:     cfg.Selfies,
	}
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "page not found", http.StatusNotFound)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// render writes an HTML view, resolving the signed-in username and pending
// flash messages from the request's session when one exists.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	pd := web.PageData{Title: title, Data: data}
	if id := auth.IdentityFromContext(r.Context()); id != nil {
		pd.Username = id.Username
		flashes, err := h.sessions.PopFlashes(r.Context(), id.SessionToken)
		if err != nil {
			h.logger.Error("pop flashes", "error", err)
		}
		pd.Flashes = flashes
	}
	h.views.Render(w, status, page, pd)
}

// renderWithFlash renders an unauthenticated page with an inline flash,
// used for form errors on sign-up and sign-in where no session exists yet.
func (h *Handler) renderWithFlash(w http.ResponseWriter, status int, page, title string, flash session.Flash) {
	h.views.Render(w, status, page, web.PageData{
		Title:   title,
		Flashes: []session.Flash{flash},
	})
}

// flash queues a one-shot message on the current session. Errors are logged
// and swallowed: a lost flash never fails the request.
func (h *Handler) flash(r *http.Request, level, message string) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		return
	}
	if err := h.sessions.PushFlash(r.Context(), id.SessionToken, session.Flash{Level: level, Message: message}); err != nil {
		h.logger.Error("push flash", "error", err)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}
