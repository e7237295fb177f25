package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watch observes the settings document for changes made by other
// processes and notifies subscribers of every key whose value changed.
// It returns once the watcher is running; the watcher stops with ctx.
func (b *Backend) Watch(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if b.isWatching() {
		return fmt.Errorf("watcher already running for %s", b.Path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// The document is replaced by rename, so the directory is what stays stable.
	if err := watcher.Add(filepath.Dir(b.Path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(b.Path), err)
	}

	b.setWatcherActive(true)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		if err := b.watchLoop(ctx, watcher); err != nil {
			b.reportError(fmt.Errorf("settings watcher: %w", err))
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		b.reportError(fmt.Errorf("settings watcher panic: %w", err))
	}))
	return nil
}

func (b *Backend) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if b.config.Logger != nil && b.config.Logger.Enabled(ctx, slog.LevelDebug) {
				b.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	defer b.setWatcherActive(false)
	defer watcher.Close()

	name := filepath.Clean(b.Path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			b.reload()

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			b.reportError(wErr)
		}
	}
}

// reload re-reads the document and fires subscribers for changed keys.
func (b *Backend) reload() {
	b.mu.Lock()
	doc, err := b.read()
	if err != nil {
		b.mu.Unlock()
		// Editors often write in several steps; the next event retries.
		if b.config.Logger != nil {
			b.config.Logger.Debug("settings reload skipped", "error", err)
		}
		return
	}
	changed := b.changedKeys(doc)
	b.remember(doc)
	b.mu.Unlock()

	b.recordReload()
	for _, key := range changed {
		if b.config.Logger != nil {
			b.config.Logger.Debug("settings key changed externally", "key", key)
		}
		b.subs.Fire(key)
	}
}

func (b *Backend) reportError(err error) {
	if b.config.Logger != nil {
		b.config.Logger.Error("settings watcher error", "error", err)
	}
	if b.config.ErrorHandler != nil {
		b.config.ErrorHandler(err)
	}
}

func (b *Backend) isWatching() bool {
	b.stateMu.RLock()
	defer b.stateMu.RUnlock()
	return b.watcherActive
}

func (b *Backend) setWatcherActive(active bool) {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	b.watcherActive = active
}

func (b *Backend) recordReload() {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	now := time.Now()
	b.lastReload = &now
}
