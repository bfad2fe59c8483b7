// Package config loads and validates analyzer configuration from file,
// environment, and defaults, and resolves rule-set selections against the
// builtin catalog plus optional user-defined rule-set documents.
package config

import "errors"

// Config is the top-level configuration struct for the analyzer.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	RuleSets []string      `mapstructure:"rule_sets"`
	Output   OutputConfig  `mapstructure:"output"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format        string `mapstructure:"format"`
	Color         bool   `mapstructure:"color"`
	ShowSuccesses bool   `mapstructure:"show_successes"`
	Strict        bool   `mapstructure:"strict"`
}

// MetricsConfig holds the metrics scrape endpoint settings.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("output.format must be text, json, or yaml")
	// ErrNoRuleSets indicates an empty rule-set selection.
	ErrNoRuleSets = errors.New("rule_sets must name at least one rule set")
)

// validFormats enumerates the accepted output formats.
var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return ErrInvalidFormat
	}

	if len(c.RuleSets) == 0 {
		return ErrNoRuleSets
	}

	return nil
}
