package storage

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads CSV tables when their files are edited outside the server.
type Watcher struct {
	watcher  *fsnotify.Watcher
	tables   map[string]Reloader
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directories holding the given tables.
func NewWatcher(debounce time.Duration, tables ...Reloader) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	w := &Watcher{
		watcher:  fsWatcher,
		tables:   make(map[string]Reloader),
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, table := range tables {
		path := filepath.Clean(table.Path())
		w.tables[path] = table
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// Watch blocks until ctx is done or Stop is called.
func (w *Watcher) Watch(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.tables[path]; !ok {
		return
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
		w.mu.Lock()
		w.pending[path] = time.Now()
		w.mu.Unlock()
	}
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, queuedAt := range w.pending {
		if now.Sub(queuedAt) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		if err := w.tables[path].Reload(); err != nil {
			log.Printf("Failed to reload %s: %v", path, err)
			continue
		}
		log.Printf("Reloaded: %s", path)
	}
}
