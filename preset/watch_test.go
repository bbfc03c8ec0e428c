package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const waitFor = 5 * time.Second

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := Watch(context.Background(), path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	writeFile(t, path, "name: first\nsteps: []\n")
	w := startWatcher(t, path)

	writeFile(t, path, "name: second\nsteps:\n  - clear: true\n")

	select {
	case p := <-w.Presets():
		if p.Name != "second" || len(p.Steps) != 1 {
			t.Errorf("preset = %+v", p)
		}
	case <-time.After(waitFor):
		t.Fatal("no preset delivered")
	}
}

func TestWatcherReportsBadDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	writeFile(t, path, "steps: []\n")
	w := startWatcher(t, path)

	writeFile(t, path, "steps: {not: a list}\n")

	select {
	case err := <-w.Errors():
		if err == nil {
			t.Error("nil error delivered")
		}
	case p := <-w.Presets():
		t.Fatalf("unexpected preset %+v", p)
	case <-time.After(waitFor):
		t.Fatal("no error delivered")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	writeFile(t, path, "steps: []\n")
	w := startWatcher(t, path)

	writeFile(t, filepath.Join(dir, "other.yaml"), "name: other\n")

	select {
	case p := <-w.Presets():
		t.Fatalf("unexpected preset %+v", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	writeFile(t, path, "steps: []\n")
	w := startWatcher(t, path)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Presets(); ok {
		t.Error("Presets should be closed")
	}
}

func TestWatcherStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	writeFile(t, path, "steps: []\n")

	ctx, cancel := context.WithCancel(context.Background())
	w, err := Watch(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })
	cancel()

	select {
	case _, ok := <-w.Presets():
		if ok {
			t.Error("unexpected preset")
		}
	case <-time.After(waitFor):
		t.Fatal("Presets not closed after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	if _, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "preset.yaml")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
