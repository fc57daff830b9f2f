package uploads

import (
	"os"
	"strings"
	"testing"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/utils"
)

func newTestStore(t *testing.T, maxSize int64) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), maxSize, utils.NewLogger("error"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSaveAndRelease(t *testing.T) {
	store := newTestStore(t, 1024)

	file, err := store.Save(strings.NewReader("hello"), "note.txt", "text/plain", 5)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if file.SizeBytes != 5 {
		t.Errorf("expected size 5, got %d", file.SizeBytes)
	}

	data, err := os.ReadFile(file.TemporaryPath)
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("saved content mismatch: %q", data)
	}

	store.Release(file)
	if _, err := os.Stat(file.TemporaryPath); !os.IsNotExist(err) {
		t.Errorf("file should be gone after release")
	}
}

func TestReleaseIdempotent(t *testing.T) {
	store := newTestStore(t, 1024)

	file, err := store.Save(strings.NewReader("x"), "a.txt", "text/plain", 1)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A second release of the same file must be a no-op, not a failure.
	store.Release(file)
	store.Release(file)

	if _, err := os.Stat(file.TemporaryPath); !os.IsNotExist(err) {
		t.Errorf("file should be absent after first release")
	}
}

func TestReleaseNeverSaved(t *testing.T) {
	store := newTestStore(t, 1024)
	store.ReleaseAll(nil)
	store.Release(models.UploadedFile{})
}

func TestSaveRejectsDisallowedMimeType(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.Save(strings.NewReader("MZ"), "app.exe", "application/x-msdownload", 2)
	if err == nil {
		t.Fatalf("expected rejection of disallowed mimetype")
	}

	entries, _ := os.ReadDir(store.dir)
	if len(entries) != 0 {
		t.Errorf("rejected file must not reach disk")
	}
}

func TestSaveRejectsOversizedDeclaredSize(t *testing.T) {
	store := newTestStore(t, 10)

	_, err := store.Save(strings.NewReader("irrelevant"), "big.txt", "text/plain", 11)
	if err == nil {
		t.Fatalf("expected rejection of oversized file")
	}
}

func TestSaveRejectsOversizedActualSize(t *testing.T) {
	store := newTestStore(t, 4)

	// Declared size lies; the copy itself must catch the overrun.
	_, err := store.Save(strings.NewReader("too big"), "lie.txt", "text/plain", 3)
	if err == nil {
		t.Fatalf("expected rejection when actual bytes exceed the limit")
	}

	entries, _ := os.ReadDir(store.dir)
	if len(entries) != 0 {
		t.Errorf("oversized file must be removed from disk")
	}
}

func TestSaveAllowsImagesAndAudio(t *testing.T) {
	store := newTestStore(t, 1024)

	for _, mime := range []string{"image/png", "image/jpeg", "audio/webm", "application/pdf"} {
		if _, err := store.Save(strings.NewReader("data"), "f", mime, 4); err != nil {
			t.Errorf("mimetype %s should be allowed: %v", mime, err)
		}
	}
}
