package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pacewatch/pacewatch/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one reporting cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, err = pipeline.New(cfg).Run(ctx)
		return err
	},
}
