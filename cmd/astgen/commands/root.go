package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/astgen/logger"
)

var jsonLogs bool

// RootCmd is the astgen command tree root.
var RootCmd = &cobra.Command{
	Use:   "astgen",
	Short: "Generate syntax-tree node types and visitor dispatch code",
	Long: `astgen - schema-driven syntax-tree source generator.

The node families (expressions, statements) are static schema tables baked
into the generator. Each run rewrites the generated source files for the
selected target languages; the files carry a "do not modify" marker and are
meant to be committed alongside hand-written code.

Examples:
  astgen generate                         # all registered languages
  astgen generate --languages go          # Go only
  astgen generate --output build/ --no-format`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonLogs)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(VersionCmd)
}
