package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	adlenslog "github.com/mktlabs/adlens/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for adlens.
var rootCmd = &cobra.Command{
	Use:   "adlens",
	Short: "Analyze ad creative performance from platform CSV exports",
	Long: `Adlens turns raw ad platform exports into creative performance insight.
It derives hook, hold, CTR, and retention rates from the columns present in
the export, scores each creative against configurable benchmarks, assigns
performance tiers, and surfaces actionable insights and recommendations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		adlenslog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
