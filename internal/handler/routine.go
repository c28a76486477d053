package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/middleware"
	"github.com/glowtrack/glowtrack/internal/model"
)

// routineView is the template data for the routine page.
type routineView struct {
	Steps []*model.RoutineStep
}

// RoutinePage lists the user's ordered routine steps.
// GET /routine
func (h *Handler) RoutinePage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	steps, err := h.routines.ListSteps(r.Context(), userID)
	if err != nil {
		h.logger.Error("list routine steps failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
		steps = nil
	}
	h.render(w, r, http.StatusOK, "routine", "Your routine", routineView{Steps: steps})
}

// AddStep appends a step to the end of the routine.
// POST /routine
func (h *Handler) AddStep(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.flash(r, "error", "Invalid form submission.")
		http.Redirect(w, r, "/routine", http.StatusSeeOther)
		return
	}

	added, err := h.routines.AddStep(r.Context(), userID, r.PostFormValue("step_name"))
	switch {
	case err != nil:
		h.logger.Error("add routine step failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
	case added:
		h.flash(r, "success", "Step added to your routine.")
	default:
		h.flash(r, "error", "Step name cannot be empty.")
	}
	http.Redirect(w, r, "/routine", http.StatusSeeOther)
}

// DeleteStep removes one of the user's own steps. Deleting a step that does
// not exist, or that belongs to someone else, reports success all the same.
// POST /routine/delete/{stepID}
func (h *Handler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	stepID := chi.URLParam(r, "stepID")

	if err := h.routines.DeleteStep(r.Context(), userID, stepID); err != nil {
		h.logger.Error("delete routine step failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
	} else {
		h.flash(r, "success", "Step removed.")
	}
	http.Redirect(w, r, "/routine", http.StatusSeeOther)
}
