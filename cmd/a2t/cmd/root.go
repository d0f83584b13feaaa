package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audio-notes/cmd/a2t/cmd/export"
	"audio-notes/cmd/a2t/cmd/process"
	"audio-notes/cmd/a2t/cmd/serve"
	"audio-notes/cmd/a2t/cmd/version"
	"audio-notes/cmd/a2t/cmd/watch"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "a2t",
	Short: "Unattended audio-to-text pipeline for a watched recordings directory",
	Long: `a2t watches a directory for deposited audio recordings, converts each one
to canonical mono 16 kHz PCM with ffmpeg, transcribes it against a remote
ASR service, appends the transcript to a durable store with a readable
sidecar, and archives the original.
- "watch" runs the loop unattended and recovers from any single failure
- "process" drains the current backlog once and exits
- "serve" exposes the status and transcript endpoints for the dashboard`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
