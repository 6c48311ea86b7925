package launcher

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/familiez/humans-service/internal/logger"
)

// reloadDebounce coalesces bursts of filesystem events (editors often write
// several times per save) into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Watcher reports debounced change notifications for a set of directory
// trees, driving reload mode.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewWatcher watches the given paths recursively. Hidden directories are
// skipped.
func NewWatcher(paths []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if err := fsw.Add(path); err != nil {
				logger.Warnf("Failed to watch %s: %v", path, err)
			}
			return nil
		})
		if err != nil {
			fsw.Close()
			return nil, err
		}
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need watches of their own.
			if ev.Op&fsnotify.Create != 0 {
				_ = w.fsw.Add(ev.Name)
			}
			logger.Debugf("Change detected: %s", ev.Name)
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				pending = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}
		case <-pending:
			timer = nil
			pending = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnf("Watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Changes delivers one notification per debounced change burst.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
