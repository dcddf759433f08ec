package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/hooks/logging"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the event stream must stay quiet before a
// batch of changed paths is delivered.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a work tree and delivers settled batches of changed file
// paths, relative to the root, in first-seen order.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
	onBatch  func(paths []string)
	logger   *logrus.Entry
}

// New creates a watcher over root. onBatch receives each settled batch of
// changed paths; it runs on the watcher's goroutine, so a long-running batch
// (a hook dispatch) naturally backpressures event collection.
func New(root string, debounce time.Duration, onBatch func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsw:      fsw,
		root:     root,
		debounce: debounce,
		onBatch:  onBatch,
		logger:   logging.NewLogger("watcher"),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// addRecursive watches root and every directory below it, except .git.
// fsnotify watches are not recursive on most platforms.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.WithError(err).Warnf("Failed to watch %s", path)
		}
		return nil
	})
}

// Start blocks, collecting events and delivering batches, until the context
// is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.fsw.Close()

	pending := make(map[string]bool)
	var order []string

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// New directories need their own watch
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil || rel == "." {
				continue
			}

			w.logger.Debugf("fsnotify event: %s op=%v", rel, event.Op)

			if !pending[rel] {
				pending[rel] = true
				order = append(order, rel)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			batch := order
			pending = make(map[string]bool)
			order = nil
			timer = nil
			timerC = nil

			if w.onBatch != nil && len(batch) > 0 {
				w.logger.WithField("paths", len(batch)).Info("Change batch settled")
				w.onBatch(batch)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Errorf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
