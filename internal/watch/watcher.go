// Package watch monitors a directory of downloaded spreadsheets and triggers
// re-analysis when one changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of a changed spreadsheet.
type Handler func(path string) error

// Watcher monitors one directory for .xlsx changes, debounced so editors
// that write in bursts trigger a single analysis.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Handler  Handler
	Logger   *log.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	watcher *fsnotify.Watcher
}

// New creates a Watcher for the given directory.
func New(dir string, handler Handler) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a watchable directory: %s", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	return &Watcher{
		Dir:      dir,
		Debounce: 500 * time.Millisecond,
		Handler:  handler,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		timers:   make(map[string]*time.Timer),
		watcher:  fsw,
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", w.Dir, err)
	}

	w.Logger.Printf("Watching %s for spreadsheet changes", w.Dir)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !ShouldProcess(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[event.Name]; ok {
		timer.Stop()
	}
	w.timers[event.Name] = time.AfterFunc(w.Debounce, func() {
		w.process(event.Name)
	})
}

func (w *Watcher) process(path string) {
	if w.Handler == nil {
		return
	}
	if err := w.Handler(path); err != nil {
		w.Logger.Printf("Error processing %s: %v", path, err)
		return
	}
	w.Logger.Printf("Processed %s", path)
}

// ShouldProcess reports whether a path is a spreadsheet worth analyzing.
// Office lock files and hidden files are skipped.
func ShouldProcess(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".") {
		return false
	}
	return true
}
