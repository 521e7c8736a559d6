package views

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch clears the template cache whenever a file under the template root
// changes. It returns once the watcher is installed; the returned function
// stops it. Cancelling ctx also stops it.
func (r *Renderer) Watch(ctx context.Context) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("views: create watcher: %w", err)
	}

	err = filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("views: watch %s: %w", r.dir, err)
	}

	go r.watchLoop(ctx, watcher)
	return watcher.Close, nil
}

func (r *Renderer) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			r.Reset()
			r.logger.Debug("views.templates.reloaded", "path", event.Name, "op", event.Op.String())
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("views.watch.error", "error", err)
		}
	}
}
