package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/manifest"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// diffArgCount is the number of arguments expected by the diff command.
const diffArgCount = 2

// NewDiffCommand creates the diff command.
func NewDiffCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "diff <old.xml> <new.xml>",
		Short: "Compare the schemas of two manifests",
		Long: `Parse both manifests and diff their canonical schema text.
Formatting-only changes to the XML do not show up; schema changes do.

Examples:
  esa diff provider-v1.man provider-v2.man`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return runDiff(cmd, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runDiff(cmd *cobra.Command, oldPath, newPath string) error {
	oldText, err := canonicalFile(oldPath)
	if err != nil {
		return err
	}

	newText, err := canonicalFile(newPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if oldText == newText {
		fmt.Fprintln(out, "schemas are identical")

		return nil
	}

	dmp := diffmatchpatch.New()

	// Line-granular diff: each schema line is one token.
	oldChars, newChars, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

	for _, diff := range diffs {
		for _, line := range splitDiffLines(diff.Text) {
			switch diff.Type {
			case diffmatchpatch.DiffDelete:
				color.New(color.FgRed).Fprintf(out, "- %s\n", line)
			case diffmatchpatch.DiffInsert:
				color.New(color.FgGreen).Fprintf(out, "+ %s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(out, "  %s\n", line)
			}
		}
	}

	return nil
}

// canonicalFile parses a manifest file and renders its canonical schema text.
func canonicalFile(path string) (string, error) {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return "", fmt.Errorf("read manifest %s: %w", path, readErr)
	}

	provider, parseErr := manifest.Read(string(content))
	if parseErr != nil {
		return "", fmt.Errorf("parse manifest %s: %w", path, parseErr)
	}

	return schema.CanonicalText(provider), nil
}

// splitDiffLines splits diff text into lines, dropping the trailing empty
// element a terminating newline produces.
func splitDiffLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
