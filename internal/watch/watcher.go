package watch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"extsort/internal/errors"
	"extsort/internal/log"

	"github.com/fsnotify/fsnotify"
)

// FileModification represents a file event detected by the watcher
type FileModification struct {
	Path      string
	Info      os.FileInfo
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher reports files created or written directly inside one directory.
// Subdirectories are not watched, so files moved into category folders do
// not produce events.
type Watcher struct {
	dir string

	events chan FileModification
	stop   chan struct{}
	done   chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.Mutex
	running bool
	stopped bool
}

// New creates a watcher for dir. The directory must exist.
func New(dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewDirectoryError("error accessing directory", dir, errors.DirectoryNotFound, err)
	}
	if !info.IsDir() {
		return nil, errors.NewDirectoryError("path is not a directory", dir, errors.NotADirectory, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		events:    make(chan FileModification, 64),
		fsWatcher: fsWatcher,
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Events returns the channel that delivers file events. It is closed once
// the watcher stops.
func (w *Watcher) Events() <-chan FileModification {
	return w.events
}

// Start begins delivering events. A stopped watcher cannot be restarted.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped {
		return fmt.Errorf("watcher has been stopped")
	}
	w.running = true
	w.stop = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stop, w.done)

	log.LogWithFields(log.F("directory", w.dir)).Info("Watching directory")
	return nil
}

func (w *Watcher) loop(stop, done chan struct{}) {
	defer close(done)
	defer close(w.events)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			// The file may be gone already, or the event is for a new folder.
			info, err := os.Stat(event.Name)
			if err != nil {
				if !os.IsNotExist(err) {
					log.LogWithFields(log.F("file", event.Name), log.F("error", err)).Warn("Error stating file")
				}
				continue
			}
			if info.IsDir() {
				continue
			}

			mod := FileModification{
				Path:      event.Name,
				Info:      info,
				Timestamp: time.Now(),
				Op:        event.Op,
			}
			select {
			case w.events <- mod:
			case <-stop:
				return
			default:
				log.LogWithFields(log.F("file", event.Name)).Debug("Event channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

// Stop halts the watcher and waits for its event loop to exit.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		if !w.stopped {
			w.stopped = true
			w.fsWatcher.Close()
			close(w.events)
		}
		w.mutex.Unlock()
		return
	}
	w.running = false
	w.stopped = true
	close(w.stop)
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}
	done := w.done
	w.mutex.Unlock()

	<-done
	log.LogWithFields(log.F("directory", w.dir)).Info("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.running
}
