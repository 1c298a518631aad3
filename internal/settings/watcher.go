package settings

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps an in-memory copy of the settings file and reloads it when
// the file changes on disk. Readers get the last good value; a broken edit
// never replaces a working configuration.
type Watcher struct {
	mu       sync.RWMutex
	path     string
	current  Settings
	onChange func(Settings)
	logger   *log.Logger

	fw   *fsnotify.Watcher
	done chan struct{}
}

func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	initial, err := Load(path)
	if err != nil {
		logger.Printf("settings: using defaults, load failed: %v", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files rather than write in place.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		current: initial,
		logger:  logger,
		fw:      fw,
		done:    make(chan struct{}),
	}
	return w, nil
}

// Run blocks until ctx is cancelled, applying file changes as they land.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Printf("settings: watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	s, err := Load(w.path)
	if err != nil {
		w.logger.Printf("settings: keeping previous settings, reload failed: %v", err)
		return
	}
	w.mu.Lock()
	w.current = s
	fn := w.onChange
	w.mu.Unlock()
	w.logger.Printf("settings: reloaded from %s", w.path)
	if fn != nil {
		fn(s)
	}
}

// OnChange registers a callback invoked after every successful reload.
func (w *Watcher) OnChange(fn func(Settings)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Current returns the latest good settings value.
func (w *Watcher) Current() Settings {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
