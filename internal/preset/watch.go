package preset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle before reloading.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls fn with the freshly parsed preset every time the file at path changes,
// until ctx is done. The parent directory is watched because editors often replace
// files instead of writing them in place. Files that fail to parse are logged and
// skipped. fn runs on the watcher goroutine.
func Watch(ctx context.Context, path string, debounce time.Duration, log *slog.Logger, fn func(*Preset)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", path, err)
	}
	log.Info("watching preset", "path", abs)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Error("preset watcher error", "error", err)

		case <-timer.C:
			p, err := Load(abs)
			if err != nil {
				log.Warn("preset reload failed", "path", abs, "error", err)
				continue
			}
			log.Info("preset reloaded", "path", abs, "name", p.Name)
			fn(p)
		}
	}
}
