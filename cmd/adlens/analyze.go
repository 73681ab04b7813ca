// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mktlabs/adlens/internal/config"
	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
	"github.com/mktlabs/adlens/internal/output"
)

// Analyze-specific flag values.
var (
	analyzeFormat     string
	analyzeOutput     string
	analyzePolicy     string
	analyzeBenchmarks string
	analyzeSort       string
	analyzeTop        int
	analyzeMinHook    float64
	analyzeMinROAS    float64
	analyzeSeed       int64
)

// analyzeCmd is the subcommand for analyzing one or more CSV exports.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <export.csv> [export.csv...]",
	Short: "Analyze ad platform CSV exports",
	Long: `Analyze one or more ad platform CSV exports: derive engagement rates from
the columns present, score each creative against benchmarks, assign tiers,
and produce insights and an aggregate summary.

Multiple exports are analyzed concurrently and written in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "summary", "output format (csv, json, summary)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzePolicy, "policy", "", "scoring policy (threshold, benchmark)")
	analyzeCmd.Flags().StringVar(&analyzeBenchmarks, "benchmarks", "", "path to a TOML benchmark preset file")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "", "column to rank creatives by (default: overall_score)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "number of top and bottom creatives to highlight (default: 3)")
	analyzeCmd.Flags().Float64Var(&analyzeMinHook, "min-hook", 0, "drop creatives with a hook rate below this percentage")
	analyzeCmd.Flags().Float64Var(&analyzeMinROAS, "min-roas", 0, "drop creatives with a ROAS below this value")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "estimate-seed", 0, "seed for the legacy noisy retention estimate")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	formatter, err := output.GetFormatter(analyzeFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "%v", err)
	}

	if analyzeOutput != "" && len(args) > 1 {
		return exitError(ExitInvalidArgs, "--output cannot be combined with multiple exports")
	}

	cfg, err := buildConfig(cmd, config.Options{
		Policy:         analyzePolicy,
		SortKey:        analyzeSort,
		TopN:           analyzeTop,
		BenchmarksFile: analyzeBenchmarks,
	})
	if err != nil {
		return err
	}

	results := make([]*engine.Result, len(args))
	g, _ := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		g.Go(func() error {
			ds, err := dataset.LoadCSVFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			ds, err = applyRowFilters(cmd, ds)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			result, err := engine.Analyze(ds, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return exitError(ExitAnalysisFailure, "%v", err)
	}

	w := io.Writer(cmd.OutOrStdout())
	if analyzeOutput != "" {
		f, createErr := os.Create(analyzeOutput) //nolint:gosec // user-specified output path
		if createErr != nil {
			return exitError(ExitInvalidArgs, "cannot create output file %q (%v)", analyzeOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	for i, result := range results {
		slog.Info("analyzed export", "path", args[i], "creatives", len(result.Rows))
		if err := formatter.Format(result, args[i], w); err != nil {
			return exitError(ExitAnalysisFailure, "formatting %s failed (%v)", args[i], err)
		}
	}
	return nil
}

// buildConfig loads the working-directory config file and merges it with the
// CLI options into a validated engine config.
func buildConfig(cmd *cobra.Command, opts config.Options) (engine.Config, error) {
	fileCfg, err := config.Load(".")
	if err != nil {
		return engine.Config{}, exitError(ExitInvalidArgs, "failed to load %s (%v)", config.FileName, err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return engine.Config{}, exitError(ExitInvalidArgs, "%v", err)
	}

	if cmd.Flags().Changed("estimate-seed") {
		opts.EstimateSeed = &analyzeSeed
	}

	cfg, err := config.Build(fileCfg, opts)
	if err != nil {
		return engine.Config{}, exitError(ExitInvalidArgs, "%v", err)
	}
	return cfg, nil
}

// applyRowFilters drops records below the --min-hook / --min-roas floors.
// Filtering happens before analysis so scores, insights, and the summary all
// reflect the filtered set.
func applyRowFilters(cmd *cobra.Command, ds *dataset.Dataset) (*dataset.Dataset, error) {
	minHook := cmd.Flags().Changed("min-hook")
	minROAS := cmd.Flags().Changed("min-roas")
	if !minHook && !minROAS {
		return ds, nil
	}

	if minHook && !ds.Schema.Has(dataset.ColThreeSecondViews, dataset.ColImpressions) {
		return nil, fmt.Errorf("--min-hook requires impressions and three-second view columns")
	}
	hasRawROAS := ds.Schema[dataset.ColROAS]
	if minROAS && !hasRawROAS && !ds.Schema.Has(dataset.ColRevenue, dataset.ColCost) {
		return nil, fmt.Errorf("--min-roas requires a ROAS column or revenue and cost columns")
	}

	filtered := &dataset.Dataset{Schema: ds.Schema}
	for _, rec := range ds.Records {
		if minHook && hookRate(rec) < analyzeMinHook {
			continue
		}
		if minROAS && roas(rec, hasRawROAS) < analyzeMinROAS {
			continue
		}
		filtered.Records = append(filtered.Records, rec)
	}
	return filtered, nil
}

func hookRate(rec dataset.Record) float64 {
	impressions := rec.Metric(dataset.ColImpressions)
	if impressions <= 0 {
		return 0
	}
	return rec.Metric(dataset.ColThreeSecondViews) / impressions * 100
}

func roas(rec dataset.Record, hasRaw bool) float64 {
	if hasRaw {
		return rec.Metric(dataset.ColROAS)
	}
	cost := rec.Metric(dataset.ColCost)
	if cost <= 0 {
		return 0
	}
	return rec.Metric(dataset.ColRevenue) / cost
}
