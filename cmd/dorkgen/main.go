package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dorkgen",
		Short: "Rewrite plain queries into search-engine dorks",
		Long: `dorkgen classifies a free-text query and rewrites it into a dork
using filetype:, inurl:, intext: and site: operators.

Examples:
  dorkgen build "find login page"
  dorkgen build --site example.com "confidential reports"
  dorkgen analyze "sql dump"
  dorkgen suggest "login to database"
  dorkgen serve --port 8080`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("pretty", false, "Indent JSON output")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSuggestCmd())
	root.AddCommand(newTaxonomyCmd())
	root.AddCommand(newServeCmd())
	return root
}
