package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config file for changes and reloads it, mirroring the
// external settings-change notifier: every successful reload is handed to the
// callback so the running bar can resync its thresholds.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(*Config)
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		path:     path,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory containing the file (more reliable for editors
	// that replace the file on save)
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	go w.watch()
	return nil
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about our file
			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("config file changed, reloading", "file", w.path)
				cfg, err := LoadConfig(w.path)
				if err != nil {
					slog.Warn("failed to reload config", "error", err)
					continue
				}
				if w.onChange != nil {
					w.onChange(cfg)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
