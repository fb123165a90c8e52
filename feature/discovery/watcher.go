package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"addressable-resources/feature/resources/collection"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for changes to settle before rescanning.
const DefaultDebounce = 250 * time.Millisecond

// Watcher rescans a content root when files below it change.
type Watcher struct {
	root     string
	marker   string
	debounce time.Duration
	onChange func(*collection.Collection)
	logger   *zap.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher watches root and every directory below it.
func NewWatcher(root, marker string, debounce time.Duration, onChange func(*collection.Collection), logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root:     root,
		marker:   marker,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		fsw:      fsw,
	}
	if err := w.watchRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) watchRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(p)
		}
		return nil
	})
}

// Rescan scans the content root once.
func (w *Watcher) Rescan() (*collection.Collection, error) {
	return ScanDir(os.DirFS(w.root), w.marker)
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case e, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Create) {
				if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
					if err := w.watchRecursive(e.Name); err != nil {
						w.logger.Warn("Failed to watch new directory", zap.String("path", e.Name), zap.Error(err))
					}
				}
			}
			if e.Has(fsnotify.Chmod) && !e.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case <-timer.C:
			c, err := w.Rescan()
			if err != nil {
				w.logger.Error("Rescan failed", zap.String("root", w.root), zap.Error(err))
				continue
			}
			w.logger.Info("Content changed, key table rebuilt", zap.Int("keys", c.Len()))
			if w.onChange != nil {
				w.onChange(c)
			}
		}
	}
}
