// Package watch reports changes to local input files.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a fixed set of files. Parent directories are watched so
// files replaced by rename keep being tracked.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      *slog.Logger
}

// New watches paths. A non-positive debounce uses DefaultDebounce.
func New(paths []string, debounce time.Duration, log *slog.Logger) (w *Watcher, err error) {
	if len(paths) == 0 {
		err = errors.New("nothing to watch")
		return w, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.Default()
	}

	var fw *fsnotify.Watcher
	fw, err = fsnotify.NewWatcher()
	if err != nil {
		err = errors.Wrap(err, "failed to create file watcher")
		return w, err
	}

	w = &Watcher{
		watcher:  fw,
		files:    make(map[string]bool, len(paths)),
		debounce: debounce,
		log:      log,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		var abs string
		abs, err = filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			err = errors.Wrapf(err, "failed to resolve %s", p)
			return w, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		err = fw.Add(dir)
		if err != nil {
			_ = fw.Close()
			err = errors.Wrapf(err, "failed to watch %s", dir)
			return w, err
		}
	}
	return w, err
}

// Files returns the number of watched files.
func (w *Watcher) Files() (n int) {
	n = len(w.files)
	return n
}

// Run calls onChange with the last changed file once events settle, until
// ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(name string)) (err error) {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return err

		case event, ok := <-w.watcher.Events:
			if !ok {
				return err
			}
			if !w.relevant(event) {
				continue
			}
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange(pending)

		case werr, ok := <-w.watcher.Errors:
			if !ok {
				return err
			}
			w.log.Warn("file watcher error", "error", werr)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) (ok bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return ok
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return ok
	}
	ok = w.files[abs]
	return ok
}

// Close stops watching.
func (w *Watcher) Close() (err error) {
	err = w.watcher.Close()
	if err != nil {
		err = errors.Wrap(err, "failed to close file watcher")
		return err
	}
	return err
}
