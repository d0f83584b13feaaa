package process

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"audio-notes/internal/app"
	"audio-notes/internal/app/config"
	"audio-notes/internal/app/logging"
	"audio-notes/internal/app/scanner"
)

var (
	configFile string
	sourcePath string
	verbose    bool
)

// Cmd drains the current backlog in a single cycle and exits. Useful after
// downtime, when a large batch has accumulated and an operator wants to
// watch it drain.
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Run exactly one scan-and-process cycle over the backlog, then exit",
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

		recordings, err := scanner.New(cfg.SourceDir, cfg.Extensions).Scan()
		if err != nil {
			return err
		}
		if len(recordings) == 0 {
			fmt.Println("no pending recordings")
			return nil
		}

		progress := mpb.New(mpb.WithOutput(os.Stderr))
		bar := progress.AddBar(int64(len(recordings)),
			mpb.PrependDecorators(
				decor.Name("transcribing "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)

		ctx := context.Background()
		failed := 0
		for _, rec := range recordings {
			if err := p.ProcessFile(ctx, rec); err != nil {
				failed++
			}
			bar.Increment()
		}
		progress.Wait()

		fmt.Printf("processed %d recordings, %d failed (failed files stay in place)\n",
			len(recordings)-failed, failed)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	Cmd.Flags().StringVarP(&sourcePath, "source-path", "s", ".", "base directory holding recordings")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "V", false, "verbose console logging")
}
