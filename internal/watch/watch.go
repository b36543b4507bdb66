package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/suykerbuyk/vibe-digest/internal/archive"
)

// DefaultQuiet is how long logs must stay unchanged before a rebuild.
const DefaultQuiet = 2 * time.Second

// Logs watches logDir and every project directory in it, calling onChange
// once writes to JSONL logs have been quiet for the given period. Project
// directories created later are added as they appear. Logs blocks until
// ctx is done or onChange fails.
func Logs(ctx context.Context, logDir string, quiet time.Duration, logger *zap.Logger, onChange func(context.Context) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(logDir); err != nil {
		return fmt.Errorf("watch %s: %w", logDir, err)
	}
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("read log dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			addDir(w, filepath.Join(logDir, e.Name()), logger)
		}
	}

	timer := time.NewTimer(quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && filepath.Dir(ev.Name) == filepath.Clean(logDir) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					addDir(w, ev.Name, logger)
					continue
				}
			}
			if !archive.IsLog(ev.Name) || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("log changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(quiet)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

func addDir(w *fsnotify.Watcher, dir string, logger *zap.Logger) {
	if err := w.Add(dir); err != nil {
		logger.Warn("cannot watch project dir", zap.String("dir", dir), zap.Error(err))
		return
	}
	logger.Debug("watching project dir", zap.String("dir", dir))
}
