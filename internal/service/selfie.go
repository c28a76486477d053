package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/repository"
	"github.com/glowtrack/glowtrack/internal/storage"
)

// ErrInvalidImage is returned when the filename is missing or its extension
// is not on the allow-list. The check is suffix-only; content is not sniffed.
var ErrInvalidImage = errors.New("invalid image file")

// allowedExtensions is the upload allow-list.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// SelfieService stores progress photos and their metadata rows.
type SelfieService struct {
	store   repository.Store
	blobs   storage.BlobStore
	metrics metrics.Recorder
}

// NewSelfieService creates a new SelfieService.
func NewSelfieService(store repository.Store, blobs storage.BlobStore, recorder metrics.Recorder) *SelfieService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SelfieService{store: store, blobs: blobs, metrics: recorder}
}

// Upload validates the filename, stores the blob under a composed name, and
// records the metadata row. The stored name is
// <userID>_<YYYYMMDD_HHMMSS>_<sanitized original>, which is unique across
// users even for identical originals uploaded in the same second.
func (s *SelfieService) Upload(ctx context.Context, userID, originalName string, r io.Reader, now time.Time) (*model.Selfie, error) {
	if !AllowedFilename(originalName) {
		s.metrics.IncSelfieRejected()
		return nil, ErrInvalidImage
	}

	stored := fmt.Sprintf("%s_%s_%s", userID, now.Format("20060102_150405"), SanitizeFilename(originalName))

	if err := s.blobs.Put(ctx, stored, r); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	selfie := &model.Selfie{
		ID:        model.NewID(),
		UserID:    userID,
		Filename:  stored,
		CreatedAt: now.UTC(),
	}

	if err := s.store.CreateSelfie(ctx, selfie); err != nil {
		return nil, fmt.Errorf("record selfie: %w", err)
	}

	s.metrics.IncSelfieUploaded()
	return selfie, nil
}

// Open returns a stored image for serving. Any signed-in user may fetch any
// stored filename; there is deliberately no ownership filter here (a known
// gap in the serving contract, kept as specified).
func (s *SelfieService) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("open image: %w", err)
	}
	return rc, nil
}

// ListSelfies returns the user's selfies, newest first.
func (s *SelfieService) ListSelfies(ctx context.Context, userID string) ([]*model.Selfie, error) {
	selfies, err := s.store.ListSelfies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list selfies: %w", err)
	}
	return selfies, nil
}

// AllowedFilename reports whether the filename has an allow-listed image
// extension.
func AllowedFilename(name string) bool {
	if name == "" || !strings.Contains(name, ".") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	return allowedExtensions[ext]
}

// SanitizeFilename reduces an uploaded filename to a safe flat name:
// path components are dropped and anything outside [A-Za-z0-9._-] becomes
// an underscore.
func SanitizeFilename(name string) string {
	// Strip any directory part, whichever separator the client used.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
