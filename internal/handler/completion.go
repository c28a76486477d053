package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/middleware"
)

// markDoneResponse is the JSON body for the mark-done endpoint.
type markDoneResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// streakView is the template data for the streak page.
type streakView struct {
	Streak int
	Dates  []time.Time
}

// MarkDone records today's completion. Calling it again on the same day is
// a no-op, and the response does not distinguish the two cases.
// POST /routine/mark-done
func (h *Handler) MarkDone(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	if err := h.completions.MarkDone(r.Context(), userID, time.Now()); err != nil {
		h.logger.Error("mark routine done failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, markDoneResponse{
			Success: false,
			Message: "Something went wrong. Please try again.",
		})
		return
	}

	writeJSON(w, http.StatusOK, markDoneResponse{
		Success: true,
		Message: "Routine marked as done for today!",
	})
}

// StreakPage shows the current streak and the completed days behind it.
// GET /streak
func (h *Handler) StreakPage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	streak, dates, err := h.completions.Streak(r.Context(), userID, time.Now())
	if err != nil {
		h.logger.Error("compute streak failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
	}
	h.render(w, r, http.StatusOK, "streak", "Your streak", streakView{Streak: streak, Dates: dates})
}

// InsightsPage shows aggregate completion stats.
// GET /insights
func (h *Handler) InsightsPage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	insights, err := h.completions.ComputeInsights(r.Context(), userID, time.Now())
	if err != nil {
		h.logger.Error("compute insights failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
		h.render(w, r, http.StatusOK, "dashboard", "Dashboard", nil)
		return
	}
	h.render(w, r, http.StatusOK, "insights", "Insights", insights)
}
