package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/middleware"
	"github.com/glowtrack/glowtrack/internal/model"
)

// reminderView is the template data for the reminders page.
type reminderView struct {
	Reminders []*model.Reminder
}

// RemindersPage lists the user's reminders.
// GET /reminders
func (h *Handler) RemindersPage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	reminders, err := h.reminders.ListReminders(r.Context(), userID)
	if err != nil {
		h.logger.Error("list reminders failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
		reminders = nil
	}
	h.render(w, r, http.StatusOK, "reminders", "Reminders", reminderView{Reminders: reminders})
}

// AddReminder stores a reminder time. The value is kept verbatim; "9:00"
// and "09:00" are different reminders.
// POST /reminders
func (h *Handler) AddReminder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.flash(r, "error", "Invalid form submission.")
		http.Redirect(w, r, "/reminders", http.StatusSeeOther)
		return
	}

	added, err := h.reminders.AddReminder(r.Context(), userID, r.PostFormValue("reminder_time"))
	switch {
	case err != nil:
		h.logger.Error("add reminder failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
	case added:
		h.flash(r, "success", "Reminder set.")
	default:
		h.flash(r, "error", "Reminder time cannot be empty.")
	}
	http.Redirect(w, r, "/reminders", http.StatusSeeOther)
}

// DeleteReminder removes one of the user's own reminders.
// POST /reminders/delete/{reminderID}
func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	reminderID := chi.URLParam(r, "reminderID")

	if err := h.reminders.DeleteReminder(r.Context(), userID, reminderID); err != nil {
		h.logger.Error("delete reminder failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
	} else {
		h.flash(r, "success", "Reminder removed.")
	}
	http.Redirect(w, r, "/reminders", http.StatusSeeOther)
}
