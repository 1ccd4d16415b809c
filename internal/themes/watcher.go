package themes

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/shaharia-lab/themify/internal/logger"
)

// Watcher logs theme files added, changed or removed in the store directory,
// including edits made outside the API.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	log     logger.Logger

	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the store's root directory.
func NewWatcher(store *Store, log logger.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: w,
		root:    store.Root(),
		log:     log,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The root directory must exist.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.root); err != nil {
		return err
	}
	w.running = true

	go w.watch()
	return nil
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("theme directory watcher error", map[string]interface{}{logger.ErrorKey: err})

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	base := filepath.Base(event.Name)
	if !strings.HasSuffix(base, Extension) {
		return
	}
	name := strings.TrimSuffix(base, Extension)
	if name == "" {
		return
	}

	var msg string
	switch {
	case event.Has(fsnotify.Create):
		msg = "theme added"
	case event.Has(fsnotify.Write):
		msg = "theme updated"
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		msg = "theme removed"
	default:
		return
	}
	w.log.Info(msg, map[string]interface{}{"theme": name})
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}
	w.running = false
	close(w.done)
	return w.watcher.Close()
}
