// Package commands implements the esa subcommands.
package commands

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/analyzer"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/config"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/observability"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/report"
)

// ErrRuleViolations is returned when an inspected manifest fails its rules.
var ErrRuleViolations = errors.New("rule violations found")

// metricsReadTimeout bounds header reads on the scrape endpoint.
const metricsReadTimeout = 5 * time.Second

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var (
		configPath   string
		ruleSetsPath string
		setNames     []string
		format       string
		listen       string

		noColor       bool
		strict        bool
		showSuccesses bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <manifest.xml ...>",
		Short: "Validate instrumentation manifests against rule sets",
		Long: `Parse each manifest into a provider schema and evaluate the
configured rule sets against it.

Examples:
  esa inspect MyCompany-Product.man
  esa inspect --sets structure --format json provider.xml
  esa inspect --rulesets team-rules.yaml --sets minimal provider.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("sets") {
				cfg.RuleSets = setNames
			}

			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}

			if noColor {
				cfg.Output.Color = false
			}

			if strict {
				cfg.Output.Strict = true
			}

			if showSuccesses {
				cfg.Output.ShowSuccesses = true
			}

			if cmd.Flags().Changed("metrics-listen") {
				cfg.Metrics.Listen = listen
			}

			if validateErr := cfg.Validate(); validateErr != nil {
				return validateErr
			}

			return runInspect(cmd, args, cfg, ruleSetsPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: .esa.yaml in CWD or $HOME)")
	cmd.Flags().StringVar(&ruleSetsPath, "rulesets", "", "YAML document with additional rule sets")
	cmd.Flags().StringSliceVar(&setNames, "sets", nil, "rule sets to run (default: structure,practice)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (text, json, yaml)")
	cmd.Flags().StringVar(&listen, "metrics-listen", "", "serve Prometheus metrics on this address while inspecting")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVar(&showSuccesses, "show-successes", false, "include passing checks in text output")

	return cmd
}

func runInspect(cmd *cobra.Command, manifestPaths []string, cfg *config.Config, ruleSetsPath string) error {
	catalog, err := config.NewCatalog()
	if err != nil {
		return err
	}

	if ruleSetsPath != "" {
		if loadErr := catalog.LoadRuleSetsFile(ruleSetsPath); loadErr != nil {
			return loadErr
		}
	}

	sets, err := catalog.Resolve(cfg.RuleSets)
	if err != nil {
		return err
	}

	metrics, metricsErr := startMetrics(cfg.Metrics.Listen)
	if metricsErr != nil {
		return metricsErr
	}

	eng, err := analyzer.New(sets, analyzer.WithMetrics(metrics))
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(report.RenderConfig{
		Format:        report.Format(cfg.Output.Format),
		Color:         cfg.Output.Color,
		ShowSuccesses: cfg.Output.ShowSuccesses,
	})

	failed := false

	for _, path := range manifestPaths {
		src, srcErr := analyzer.NewFileSource(path)
		if srcErr != nil {
			return srcErr
		}

		rep, inspectErr := eng.Inspect(src)
		if inspectErr != nil {
			return inspectErr
		}

		rendered, renderErr := renderer.Render(rep)
		if renderErr != nil {
			return renderErr
		}

		fmt.Fprint(cmd.OutOrStdout(), rendered)

		if rep.HasErrors() || (cfg.Output.Strict && rep.HasWarnings()) {
			failed = true
		}
	}

	if failed {
		return ErrRuleViolations
	}

	return nil
}

// startMetrics exposes a Prometheus scrape endpoint for the inspection when
// an address is configured. Returns nil metrics when disabled.
func startMetrics(listen string) (*observability.InspectionMetrics, error) {
	if listen == "" {
		return nil, nil
	}

	endpoint, err := observability.NewPrometheusEndpoint("esa")
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewInspectionMetrics(endpoint.Meter)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", endpoint.Handler)

	server := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadTimeout,
	}

	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			color.New(color.FgYellow).Fprintf(os.Stderr, "metrics endpoint failed: %v\n", serveErr)
		}
	}()

	return metrics, nil
}
