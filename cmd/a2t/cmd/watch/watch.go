package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"audio-notes/internal/app"
	"audio-notes/internal/app/config"
	"audio-notes/internal/app/logging"
	"audio-notes/internal/app/pipeline"
)

var (
	configFile string
	sourcePath string
	verbose    bool
)

// Cmd runs the unattended watch loop until interrupted.
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the source directory and transcribe recordings forever",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, sourcePath)
		if err != nil {
			return err
		}
		if err := config.EnsureDirs(cfg); err != nil {
			return err
		}

		log := logging.MustNewLogger(verbose, cfg.LogFile)
		defer log.Sync()

		p, cleanup, err := app.InitializePipeline(cfg, log)
		if err != nil {
			return fmt.Errorf("initialize pipeline: %w", err)
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		supervisor := pipeline.NewSupervisor(p, cfg.PollInterval, cfg.ErrorBackoff, log)
		if err := supervisor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	Cmd.Flags().StringVarP(&sourcePath, "source-path", "s", ".", "base directory holding recordings")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose console logging")
}
