package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
)

// Format selects the renderer's output encoding.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned when the renderer receives a format it
// does not know.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const msgNoResults = "No rule results"

// RenderConfig defines configuration for rendering a report.
type RenderConfig struct {
	Format        Format
	Color         bool
	ShowSuccesses bool
}

// Renderer turns a report into a displayable string.
type Renderer struct {
	config RenderConfig
}

// NewRenderer creates a renderer with the given settings.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
	}
}

// Render encodes the report in the configured format.
func (r *Renderer) Render(rep *Report) (string, error) {
	switch r.config.Format {
	case FormatText:
		return r.renderText(rep), nil
	case FormatJSON:
		return r.renderJSON(rep)
	case FormatYAML:
		return r.renderYAML(rep)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.config.Format)
	}
}

// renderText renders the human-readable table view.
func (r *Renderer) renderText(rep *Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("=== %s ===", rep.Provider()))
	parts = append(parts, r.formatSummary(rep))

	for _, set := range rep.Sets() {
		section := r.formatSetTable(set.Name(), rep.ResultsForSet(set.Name()))
		if section != "" {
			parts = append(parts, section)
		}
	}

	return strings.Join(parts, "\n\n") + "\n"
}

// formatSummary formats the one-line verdict with per-kind counts.
func (r *Renderer) formatSummary(rep *Report) string {
	errorCount := rep.CountByKind(rules.KindError)
	warningCount := rep.CountByKind(rules.KindWarning)
	successCount := rep.CountByKind(rules.KindSuccess)

	counts := fmt.Sprintf("%s | %s | %s",
		english.Plural(errorCount, "error", ""),
		english.Plural(warningCount, "warning", ""),
		english.Plural(successCount, "success", "successes"))

	verdict := r.paint(color.FgGreen, "PASS")
	if rep.HasErrors() {
		verdict = r.paint(color.FgRed, "FAIL")
	} else if rep.HasWarnings() {
		verdict = r.paint(color.FgYellow, "PASS WITH WARNINGS")
	}

	return fmt.Sprintf("%s (%s)", verdict, counts)
}

// formatSetTable formats one rule set's results as a go-pretty table.
func (r *Renderer) formatSetTable(setName string, results []rules.Result) string {
	rows := make([]table.Row, 0, len(results))

	for _, result := range results {
		if result.Kind == rules.KindSuccess && !r.config.ShowSuccesses {
			continue
		}

		rows = append(rows, table.Row{r.formatKind(result.Kind), result.RuleID, result.Message})

		for _, detail := range result.Details {
			rows = append(rows, table.Row{"", "", fmt.Sprintf("  %s: %s", detail.Key, detail.Description)})
		}
	}

	if len(rows) == 0 {
		if len(results) == 0 {
			return fmt.Sprintf("%s:\n%s", setName, msgNoResults)
		}

		// Every result passed and successes are hidden.
		return fmt.Sprintf("%s: %s", setName, r.paint(color.FgGreen, "all checks passed"))
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"KIND", "RULE", "MESSAGE"})

	for _, row := range rows {
		tbl.AppendRow(row)
	}

	return fmt.Sprintf("%s:\n%s", setName, tbl.Render())
}

// formatKind renders a result kind with its color when coloring is enabled.
func (r *Renderer) formatKind(kind rules.Kind) string {
	switch kind {
	case rules.KindError:
		return r.paint(color.FgRed, kind.String())
	case rules.KindWarning:
		return r.paint(color.FgYellow, kind.String())
	case rules.KindSuccess:
		return r.paint(color.FgGreen, kind.String())
	default:
		return kind.String()
	}
}

// paint applies the color attribute when coloring is enabled.
func (r *Renderer) paint(attribute color.Attribute, text string) string {
	if !r.config.Color {
		return text
	}

	return color.New(attribute).Sprint(text)
}

// document is the serializable shape shared by the JSON and YAML encodings.
type document struct {
	Provider string           `json:"provider"           yaml:"provider"`
	Sets     []setDocument    `json:"ruleSets"           yaml:"ruleSets"`
	Summary  summaryDocument  `json:"summary"            yaml:"summary"`
	Results  []resultDocument `json:"results"            yaml:"results"`
}

type setDocument struct {
	Name  string   `json:"name"  yaml:"name"`
	Rules []string `json:"rules" yaml:"rules"`
}

type summaryDocument struct {
	Errors    int `json:"errors"    yaml:"errors"`
	Warnings  int `json:"warnings"  yaml:"warnings"`
	Successes int `json:"successes" yaml:"successes"`
}

type resultDocument struct {
	Kind    string           `json:"kind"              yaml:"kind"`
	Rule    string           `json:"rule"              yaml:"rule"`
	RuleSet string           `json:"ruleSet"           yaml:"ruleSet"`
	Message string           `json:"message"           yaml:"message"`
	Details []detailDocument `json:"details,omitempty" yaml:"details,omitempty"`
}

type detailDocument struct {
	Key         string `json:"key"         yaml:"key"`
	Description string `json:"description" yaml:"description"`
}

// renderJSON renders the machine-readable JSON encoding.
func (r *Renderer) renderJSON(rep *Report) (string, error) {
	encoded, err := json.MarshalIndent(buildDocument(rep), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report as json: %w", err)
	}

	return string(encoded) + "\n", nil
}

// renderYAML renders the machine-readable YAML encoding.
func (r *Renderer) renderYAML(rep *Report) (string, error) {
	encoded, err := yaml.Marshal(buildDocument(rep))
	if err != nil {
		return "", fmt.Errorf("encode report as yaml: %w", err)
	}

	return string(encoded), nil
}

// buildDocument flattens a report into its serializable shape.
func buildDocument(rep *Report) document {
	sets := make([]setDocument, 0, len(rep.Sets()))

	for _, set := range rep.Sets() {
		ruleIDs := make([]string, 0, set.Len())
		for _, rule := range set.Rules() {
			ruleIDs = append(ruleIDs, rule.ID())
		}

		sets = append(sets, setDocument{Name: set.Name(), Rules: ruleIDs})
	}

	results := make([]resultDocument, 0, len(rep.Results()))

	for _, result := range rep.Results() {
		details := make([]detailDocument, 0, len(result.Details))
		for _, detail := range result.Details {
			details = append(details, detailDocument{Key: detail.Key, Description: detail.Description})
		}

		results = append(results, resultDocument{
			Kind:    result.Kind.String(),
			Rule:    result.RuleID,
			RuleSet: result.RuleSet,
			Message: result.Message,
			Details: details,
		})
	}

	return document{
		Provider: rep.Provider(),
		Sets:     sets,
		Summary: summaryDocument{
			Errors:    rep.CountByKind(rules.KindError),
			Warnings:  rep.CountByKind(rules.KindWarning),
			Successes: rep.CountByKind(rules.KindSuccess),
		},
		Results: results,
	}
}
