package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/middleware"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/service"
	"github.com/glowtrack/glowtrack/internal/storage"
)

// selfieView is the template data for the selfie pages.
type selfieView struct {
	ShowResult bool
	Filename   string
	Selfies    []*model.Selfie
}

// SelfieForm renders the upload form with the user's previous uploads.
// GET /selfie
func (h *Handler) SelfieForm(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	selfies, err := h.selfies.ListSelfies(r.Context(), userID)
	if err != nil {
		h.logger.Error("list selfies failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
		selfies = nil
	}
	h.render(w, r, http.StatusOK, "selfie", "Selfie check", selfieView{Selfies: selfies})
}

// SelfieUpload accepts a progress photo and redirects to its result view.
// POST /selfie
func (h *Handler) SelfieUpload(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.flash(r, "error", "Please choose a photo to upload.")
		http.Redirect(w, r, "/selfie", http.StatusSeeOther)
		return
	}
	defer file.Close()

	selfie, err := h.selfies.Upload(r.Context(), userID, header.Filename, file, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			h.flash(r, "error", "Please upload a PNG, JPG, GIF, or WebP image.")
			http.Redirect(w, r, "/selfie", http.StatusSeeOther)
			return
		}
		h.logger.Error("selfie upload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		h.flash(r, "error", "Something went wrong. Please try again.")
		http.Redirect(w, r, "/selfie", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/selfie/result/"+selfie.Filename, http.StatusSeeOther)
}

// SelfieResult shows the result view for an uploaded photo.
// GET /selfie/result/{filename}
func (h *Handler) SelfieResult(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	h.render(w, r, http.StatusOK, "selfie", "Selfie check", selfieView{
		ShowResult: true,
		Filename:   filename,
	})
}

// ServeUpload streams a stored photo. Any signed-in user can fetch any
// stored filename here; the route is session-gated but not ownership-gated.
// GET /uploads/{filename}
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	rc, err := h.selfies.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		h.logger.Error("open upload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("stream upload failed", slog.String("error", err.Error()))
	}
}
