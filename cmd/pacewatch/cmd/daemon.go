package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacewatch/pacewatch/internal/config"
	"github.com/pacewatch/pacewatch/internal/pipeline"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a reporting cycle on an interval, hot-reloading the config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		var mu sync.Mutex
		current := cfg

		// Hot reload swaps the config between cycles; a running cycle keeps
		// the config it started with.
		go func() {
			err := config.Watch(ctx, cfgFile, func(updated *config.Config) {
				mu.Lock()
				current = updated
				mu.Unlock()
				slog.Info("daemon: config hot-reloaded",
					"customers", len(updated.Customers),
					"interval", updated.Run.Interval.String())
			})
			if err != nil {
				slog.Error("daemon: config watcher stopped", "err", err)
			}
		}()

		for {
			mu.Lock()
			c := current
			mu.Unlock()

			if _, err := pipeline.New(c).Run(ctx); err != nil {
				if ctx.Err() != nil {
					slog.Info("daemon: shutting down")
					return nil
				}
				slog.Error("daemon: run failed", "err", err)
			}

			timer := time.NewTimer(c.Run.Interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				slog.Info("daemon: shutting down")
				return nil
			case <-timer.C:
			}
		}
	},
}
