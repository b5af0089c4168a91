package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces the burst of filesystem events a single save
// produces (editors commonly truncate, write, then rename into place).
var debounceInterval = 200 * time.Millisecond

// Watch reloads the pacewatch config whenever path changes and hands each
// successfully loaded Config to apply. Bursts of events are debounced into
// one reload. A rewrite that fails validation is rejected with a log and the
// running config stays in effect. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, apply func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching", "path", path)

	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(debounceInterval)
				fire = pending.C
			} else {
				pending.Reset(debounceInterval)
			}

		case <-fire:
			pending = nil
			fire = nil

			// Atomic saves replace the inode; re-arm before loading so the
			// next save is not missed.
			_ = w.Add(path)

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: rewrite rejected — keeping running config",
					"path", path, "err", err)
				continue
			}

			slog.Info("config: reloaded",
				"path", path,
				"customers", len(cfg.Customers),
				"interval", cfg.Run.Interval.String(),
				"webhooks", len(cfg.Notify.Webhooks))
			apply(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
