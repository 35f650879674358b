package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/core/domain"
)

func writeUpload(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}
	return p
}

func waitGone(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("file still present: %s", path)
}

func TestSweeper_RemovesEnqueuedUpload(t *testing.T) {
	dir := t.TempDir()
	onDisk := writeUpload(t, dir, "image-1-abc.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSweeper(dir, zerolog.Nop())
	s.Start(ctx)

	s.Enqueue("/uploads/image-1-abc.jpg")
	waitGone(t, onDisk)
}

func TestSweeper_IgnoresForeignPaths(t *testing.T) {
	dir := t.TempDir()
	catalog := writeUpload(t, dir, "superman.jpg")
	placeholder := writeUpload(t, dir, "default-hero.jpg")

	s := NewSweeper(dir, zerolog.Nop())

	// Call remove directly so there is no goroutine timing to wait out.
	s.remove("/images/lg/superman.jpg")
	s.remove(domain.PlaceholderImage)
	s.remove("relative/path.jpg")

	for _, p := range []string{catalog, placeholder} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("file should survive: %v", err)
		}
	}
}

// A stored path with directory components must not reach outside the upload
// directory.
func TestSweeper_StripsTraversal(t *testing.T) {
	dir := t.TempDir()
	inside := writeUpload(t, dir, "secret.jpg")

	s := NewSweeper(dir, zerolog.Nop())
	s.remove("/uploads/../../secret.jpg")

	// Base() reduces the crafted path to "secret.jpg" inside the upload dir,
	// so the file inside is the one removed and nothing outside is touched.
	if _, err := os.Stat(inside); !os.IsNotExist(err) {
		t.Fatalf("expected in-dir file removed, stat err = %v", err)
	}
}

func TestSweeper_MissingFileIsNotFatal(t *testing.T) {
	s := NewSweeper(t.TempDir(), zerolog.Nop())
	// Nothing to assert beyond not panicking; removal is best effort.
	s.remove("/uploads/never-existed.jpg")
}
