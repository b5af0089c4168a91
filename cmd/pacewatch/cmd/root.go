// Package cmd provides the CLI commands for pacewatch.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacewatch/pacewatch/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pacewatch",
	Short: "Compare customer revenue pace and surface a watch list",
	Long: `pacewatch compares each customer's month-to-date revenue against a
prorated prior-month baseline, classifies the change, explains big movers,
and merges escalation and ticket signals into a watch list delivered to
chat webhooks.

Examples:
  pacewatch run --config pacewatch.yaml
  pacewatch daemon --config pacewatch.yaml --verbose`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "pacewatch.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(daemonCmd)
}

// loadConfig loads and validates the config file. A configuration error is
// fatal before any network activity.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		slog.Error("failed to load config", "path", cfgFile, "err", err)
		return nil, err
	}
	slog.Info("config loaded",
		"path", cfgFile,
		"customers", len(cfg.Customers),
		"primary", cfg.Primary.Endpoint != "",
		"webhooks", len(cfg.Notify.Webhooks),
	)
	return cfg, nil
}
