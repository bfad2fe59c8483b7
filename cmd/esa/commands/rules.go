package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/config"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	var ruleSetsPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the known rule sets and rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, ruleSetsPath)
		},
	}

	cmd.Flags().StringVar(&ruleSetsPath, "rulesets", "", "YAML document with additional rule sets")

	return cmd
}

func runRules(cmd *cobra.Command, ruleSetsPath string) error {
	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	if ruleSetsPath != "" {
		if loadErr := catalog.LoadRuleSetsFile(ruleSetsPath); loadErr != nil {
			return loadErr
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"SET", "RULE", "GRANULARITY", "DESCRIPTION"})

	for _, set := range catalog.Sets() {
		for _, rule := range set.Rules() {
			tbl.AppendRow(table.Row{set.Name(), rule.ID(), granularity(rule), rule.Description()})
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

	return nil
}

// granularity names the check level(s) a rule participates in.
func granularity(rule rules.Rule) string {
	var levels []string

	if _, ok := rule.(rules.ProviderRule); ok {
		levels = append(levels, "provider")
	}

	if _, ok := rule.(rules.EventRule); ok {
		levels = append(levels, "event")
	}

	return strings.Join(levels, "+")
}
