package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Cmd prints the build version.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the a2t version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("a2t %s\n", Version)
	},
}
