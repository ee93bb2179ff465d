package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fakedev.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 8)
	stop, err := watchConfig(path, func() { reloaded <- struct{}{} })
	if err != nil {
		t.Fatalf("watchConfig() error = %v", err)
	}
	defer stop()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"provisioner": "none"}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatalf("config change was not noticed")
	}
}
