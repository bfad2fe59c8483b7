// Package main provides the entry point for the esa CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChilliCream/EventSourceAnalyzer/cmd/esa/commands"
	"github.com/ChilliCream/EventSourceAnalyzer/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "esa",
		Short: "EventSource Analyzer - instrumentation manifest validation",
		Long: `esa parses event provider instrumentation manifests and runs
rule sets over the resulting schema.

Commands:
  inspect   Validate manifests against the configured rule sets
  diff      Compare the schemas of two manifests
  rules     List the known rule sets and rules`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewDiffCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "esa %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
