package explorer

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher follows the navigator's current directory and signals whenever its
// contents change, so the UI can re-list without polling. Only one directory
// is watched at a time.
type Watcher struct {
	fsw     *fsnotify.Watcher
	events  chan string
	mu      sync.Mutex
	watched string
	done    chan struct{}
}

// NewWatcher builds a watcher. Callers must Close it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fsw:    fsw,
		events: make(chan string, 8),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers the directory that changed. The channel is buffered and
// drops signals when the consumer lags; a refresh is idempotent.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Watch switches the watched directory.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched == dir {
		return nil
	}
	if w.watched != "" {
		// Best effort: the old directory may already be gone.
		_ = w.fsw.Remove(w.watched)
	}
	if err := w.fsw.Add(dir); err != nil {
		w.watched = ""
		return err
	}
	w.watched = dir
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
				continue
			}
			w.mu.Lock()
			dir := w.watched
			w.mu.Unlock()
			select {
			case w.events <- dir:
			default:
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
