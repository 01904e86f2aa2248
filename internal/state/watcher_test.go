package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) (*DataWatcher, string, chan string) {
	t.Helper()

	dir := t.TempDir()
	w, err := NewDataWatcher(dir)
	if err != nil {
		t.Fatalf("NewDataWatcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	events := make(chan string, 16)
	w.OnChange(func(rel string) { events <- rel })

	return w, dir, events
}

func waitForEvent(t *testing.T, events chan string, want string) {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case rel := <-events:
			if rel == want {
				return
			}
			if strings.HasSuffix(rel, ".txt") {
				t.Fatalf("watcher reported non-JSON path %q", rel)
			}
		case <-deadline:
			t.Fatalf("no event for %q before timeout", want)
		}
	}
}

func TestDataWatcherReportsJSONChanges(t *testing.T) {
	_, dir, events := newTestWatcher(t)

	path := filepath.Join(dir, "1_0000000000000001.json")
	if err := os.WriteFile(path, []byte(`{"id":"1_0000000000000001"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	waitForEvent(t, events, "1_0000000000000001.json")
}

func TestDataWatcherIgnoresNonJSON(t *testing.T) {
	_, dir, events := newTestWatcher(t)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tag_animal.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// waitForEvent fails the test if notes.txt surfaces before the tag file.
	waitForEvent(t, events, "tag_animal.json")
}

func TestDataWatcherCoversNewSubdirectories(t *testing.T) {
	_, dir, events := newTestWatcher(t)

	sub := filepath.Join(dir, "archive")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	// Give the watcher a moment to pick up the new directory.
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(sub, "2_0000000000000002.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	waitForEvent(t, events, "archive/2_0000000000000002.json")
}

func TestDataWatcherClose(t *testing.T) {
	w, _, _ := newTestWatcher(t)

	var closes int
	w.OnClose(func() { closes++ })

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if closes != 1 {
		t.Fatalf("OnClose fired %d times, want 1", closes)
	}
}

func TestNewDataWatcherRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	if _, err := NewDataWatcher(""); err == nil {
		t.Fatal("expected an error for an empty data directory")
	}
}
