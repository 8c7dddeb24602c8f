package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lessonforge/internal/domain"
	"lessonforge/internal/service"
)

// ─────────────────────────────────────────────────────────────
// FileSync tests
// Lifecycle only; reload behavior depends on OS event timing.
// ─────────────────────────────────────────────────────────────

func TestFileSync_WatchAndStop(t *testing.T) {
	svc, _ := newTestService(t)
	d, _ := svc.CreateDocument(context.Background(), "L", domain.DocumentTypeLesson, "# Title")

	path := filepath.Join(t.TempDir(), "lesson.md")
	if err := os.WriteFile(path, []byte("# Title\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs, err := service.NewFileSync(svc)
	if err != nil {
		t.Fatalf("new file sync: %v", err)
	}
	defer fs.Close()

	if err := fs.WatchDocument(d.ID, path); err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Stopping twice must be harmless, as must stopping an unknown document.
	fs.StopWatching(d.ID)
	fs.StopWatching(d.ID)
	fs.StopWatching("doc-ghost")

	if err := fs.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestFileSync_WatchMissingDirectoryFails(t *testing.T) {
	svc, _ := newTestService(t)
	d, _ := svc.CreateDocument(context.Background(), "L", domain.DocumentTypeLesson, "# Title")

	fs, err := service.NewFileSync(svc)
	if err != nil {
		t.Fatalf("new file sync: %v", err)
	}
	defer fs.Close()

	if err := fs.WatchDocument(d.ID, "/nonexistent-dir-for-test/lesson.md"); err == nil {
		t.Error("expected watch of missing directory to fail")
	}
}
