package supervisor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchScript watches the server script for changes and emits one event per
// change. The watcher closes when the context is canceled.
func WatchScript(ctx context.Context, script string, log *zap.Logger) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save and
	// a file watch would be lost after the first write.
	if err := watcher.Add(filepath.Dir(script)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(script), err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(script) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
					// A restart is already pending.
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("Watcher error", zap.Error(werr))
			}
		}
	}()
	return ch, nil
}
