package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of file events to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watch calls onChange once a burst of changes to content files below root
// has settled for debounce. Newly created directories are watched as well.
// It returns after the watcher is set up; watching stops when ctx is done.
func Watch(ctx context.Context, root string, debounce time.Duration, onChange func(), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content: create watcher: %w", err)
	}
	if err := addTree(w, root); err != nil {
		w.Close()
		return fmt.Errorf("content: watch %s: %w", root, err)
	}
	logger.Info("watching content collection", "root", root)

	go func() {
		defer w.Close()
		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		fire := func() {
			mu.Lock()
			defer mu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)
		}
		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						if err := addTree(w, ev.Name); err != nil {
							logger.Warn("watch new directory", "path", ev.Name, "error", err)
						}
						fire()
						continue
					}
				}
				if !IsContentFile(ev.Name) {
					continue
				}
				logger.Debug("content changed", "path", ev.Name, "op", ev.Op.String())
				fire()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("content watcher error", "error", err)
			}
		}
	}()
	return nil
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}
