package glapp

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file. It is polled from the frame loop
// and never blocks. The containing directory is watched so that editors which
// replace files by renaming are also detected.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
}

// NewWatcher starts watching the file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewBufferedWatcher(16)
	if err != nil {
		return nil, err
	}
	err = w.Add(filepath.Dir(abs))
	if err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{w: w, path: abs}, nil
}

// Changed drains pending notifications and reports whether the watched file was
// written or replaced since the last call. Errors reported by the underlying
// watcher are joined and returned.
func (w *Watcher) Changed() (changed bool, err error) {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return changed, errors.Join(err, errors.New("watcher closed"))
			}
			if filepath.Clean(ev.Name) == w.path && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed = true
			}
		case werr, ok := <-w.w.Errors:
			if ok {
				err = errors.Join(err, werr)
			}
		default:
			return changed, err
		}
	}
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
