package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mktlabs/adlens/internal/config"
	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
	"github.com/mktlabs/adlens/internal/report"
)

// Report-specific flag values.
var (
	reportSections string
	reportOutput   string
	reportFormat   string
)

// defaultSectionOrder is the human-friendly reading order for the full report.
var defaultSectionOrder = []string{"overview", "performance", "insights", "leaders"}

// reportCmd is the subcommand for generating a creative performance report.
var reportCmd = &cobra.Command{
	Use:   "report <export.csv>",
	Short: "Generate a creative performance report",
	Long: `Analyze an ad platform CSV export and render a sectioned performance
report: overview averages, per-creative scores and tiers, insights, and
top/bottom leaders. Sections whose required columns are missing from the
export are skipped with a note.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSections, "sections", "", "comma-separated list of report sections to include")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format (text, json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return exitError(ExitInvalidArgs, "unsupported format %q (supported: text, json)", reportFormat)
	}

	sections := defaultSectionOrder
	if reportSections != "" {
		sections = parseSections(reportSections)
		if len(sections) == 0 {
			return exitError(ExitInvalidArgs, "no valid sections in %q (available: %s)",
				reportSections, strings.Join(report.List(), ", "))
		}
	}

	cfg, err := buildConfig(cmd, config.Options{})
	if err != nil {
		return err
	}

	path := args[0]
	ds, err := dataset.LoadCSVFile(path)
	if err != nil {
		return exitError(ExitAnalysisFailure, "%s: %v", path, err)
	}

	result, err := engine.Analyze(ds, cfg)
	if err != nil {
		return exitError(ExitAnalysisFailure, "%s: %v", path, err)
	}

	w := io.Writer(cmd.OutOrStdout())
	if reportOutput != "" {
		f, createErr := os.Create(reportOutput) //nolint:gosec // user-specified output path
		if createErr != nil {
			return exitError(ExitInvalidArgs, "cannot create output file %q (%v)", reportOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	switch reportFormat {
	case "json":
		err = report.RenderJSON(result, path, sections, w)
	default:
		if err = renderReportHeader(w, path, result); err == nil {
			err = report.Render(result, sections, w)
		}
	}
	if err != nil {
		return exitError(ExitAnalysisFailure, "rendering failed (%v)", err)
	}

	slog.Info("report complete", "creatives", result.Summary.Count, "sections", len(sections))
	return nil
}

// parseSections filters the user's comma-separated list against the
// registered sections, warning about unknown names.
func parseSections(s string) []string {
	registered := make(map[string]bool)
	for _, name := range report.List() {
		registered[name] = true
	}

	var sections []string
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !registered[name] {
			slog.Warn("unknown report section", "section", name)
			continue
		}
		sections = append(sections, name)
	}
	return sections
}

// renderReportHeader writes the report banner above the sections.
func renderReportHeader(w io.Writer, path string, result *engine.Result) error {
	_, err := fmt.Fprintf(w, "Adlens Report\n=============\n\nSource: %s\nCreatives: %d\n\n",
		path, result.Summary.Count)
	return err
}
