package watch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestShouldProcess(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/data/sales.xlsx", true},
		{"/data/Sales.XLSX", true},
		{"/data/report.docx", false},
		{"/data/notes.txt", false},
		{"/data/~$sales.xlsx", false},
		{"/data/.hidden.xlsx", false},
		{"sales.xlsx", true},
	}

	for _, tc := range cases {
		if got := ShouldProcess(tc.path); got != tc.want {
			t.Errorf("ShouldProcess(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestNewRejectsNonDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(file, nil); err == nil {
		t.Error("expected error for a plain file")
	}
}

func TestWatcherTriggersHandler(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	var lastPath atomic.Value
	w, err := New(dir, func(path string) error {
		lastPath.Store(path)
		calls.Add(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 50 * time.Millisecond
	w.Logger = log.New(io.Discard, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Let the watch registration settle before writing.
	time.Sleep(100 * time.Millisecond)

	target := filepath.Join(dir, "sales.xlsx")
	if err := os.WriteFile(target, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}
	skipped := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(skipped, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("handler never ran")
		case <-time.After(20 * time.Millisecond):
		}
	}

	if got := lastPath.Load(); got != target {
		t.Errorf("handler got %v, want %s", got, target)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 handler call, got %d", calls.Load())
	}
}
