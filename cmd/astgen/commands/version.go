package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// VersionCmd prints the astgen version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the astgen version",
	Run: func(cmd *cobra.Command, args []string) {
		pterm.Printf("astgen %s\n", Version)
	},
}
