package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glowtrack/glowtrack/internal/repository"
	"github.com/glowtrack/glowtrack/internal/storage"
)

func newSelfieService(t *testing.T) *SelfieService {
	t.Helper()
	blobs, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	return NewSelfieService(repository.NewMemory(), blobs, nil)
}

func TestAllowedFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"x.png", true},
		{"x.jpg", true},
		{"x.JPEG", true},
		{"x.gif", true},
		{"x.webp", true},
		{"x.exe", false},
		{"x.png.exe", false},
		{"noextension", false},
		{"", false},
	}

	for _, test := range tests {
		if got := AllowedFilename(test.name); got != test.want {
			t.Errorf("AllowedFilename(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"face.png", "face.png"},
		{"my selfie!.png", "my_selfie_.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{`C:\photos\me.jpg`, "me.jpg"},
		{"héllo.png", "h_llo.png"},
	}

	for _, test := range tests {
		if got := SanitizeFilename(test.in); got != test.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestSelfieService_Upload(t *testing.T) {
	t.Parallel()

	svc := newSelfieService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 10, 30, 45, 0, time.UTC)

	selfie, err := svc.Upload(ctx, "u1", "face.png", strings.NewReader("img"), now)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if selfie.Filename == "face.png" {
		t.Error("stored filename must differ from the original")
	}
	if !strings.HasPrefix(selfie.Filename, "u1_20250615_103045_") {
		t.Errorf("unexpected stored filename: %s", selfie.Filename)
	}
	if !strings.HasSuffix(selfie.Filename, "face.png") {
		t.Errorf("stored name should keep the sanitized original: %s", selfie.Filename)
	}

	// The blob must be retrievable under the stored name.
	rc, err := svc.Open(ctx, selfie.Filename)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	rc.Close()
}

func TestSelfieService_Upload_RejectsBadExtension(t *testing.T) {
	t.Parallel()

	svc := newSelfieService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "u1", "x.exe", strings.NewReader("mz"), time.Now())
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage, got %v", err)
	}

	_, err = svc.Upload(ctx, "u1", "", strings.NewReader(""), time.Now())
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage for empty name, got %v", err)
	}
}

func TestSelfieService_Upload_UniqueAcrossUsersSameSecond(t *testing.T) {
	t.Parallel()

	svc := newSelfieService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 10, 30, 45, 0, time.UTC)

	a, err := svc.Upload(ctx, "userA", "face.png", strings.NewReader("a"), now)
	if err != nil {
		t.Fatalf("upload A failed: %v", err)
	}
	b, err := svc.Upload(ctx, "userB", "face.png", strings.NewReader("b"), now)
	if err != nil {
		t.Fatalf("upload B failed: %v", err)
	}

	// Identical original names in the same second, different owners:
	// stored names must not collide.
	if a.Filename == b.Filename {
		t.Errorf("stored filenames collided: %s", a.Filename)
	}
}

func TestSelfieService_OpenMissing(t *testing.T) {
	t.Parallel()

	svc := newSelfieService(t)

	_, err := svc.Open(context.Background(), "u1_20250101_000000_gone.png")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected storage.ErrNotFound, got %v", err)
	}
}
