// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Severity classifies an insight.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeveritySuccess  Severity = "success"
	SeverityInfo     Severity = "info"
)

// Insight is a single structured finding about a creative (or, for
// recommendations, about the dataset as a whole). Insights are recomputed
// on every engine call and never persisted.
type Insight struct {
	Rule     string   `json:"rule"`
	Subject  string   `json:"subject"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// rule is one entry of the per-creative rule table. Rules are independent;
// every applicable rule fires, in declaration order.
type rule struct {
	name     string
	severity Severity
	applies  func(row Row, cfg Config) bool
	message  func(row Row, cfg Config) string
}

var insightRules = []rule{
	{
		name:     "hook-low",
		severity: SeverityCritical,
		applies: func(row Row, cfg Config) bool {
			v, ok := row.Rates[dataset.ColHookRate]
			return ok && v < cfg.Insight.HookLowFactor*cfg.Benchmarks.Hook
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("hook rate %.2f%% is well under the %.1f%% benchmark; rework the opening three seconds",
				row.Rates[dataset.ColHookRate], cfg.Benchmarks.Hook)
		},
	},
	{
		name:     "hook-high",
		severity: SeveritySuccess,
		applies: func(row Row, cfg Config) bool {
			v, ok := row.Rates[dataset.ColHookRate]
			return ok && v > cfg.Insight.HookHighFactor*cfg.Benchmarks.Hook
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("hook rate %.2f%% clears the %.1f%% benchmark by a wide margin; reuse this opening as a template",
				row.Rates[dataset.ColHookRate], cfg.Benchmarks.Hook)
		},
	},
	{
		name:     "hold-low",
		severity: SeverityWarning,
		applies: func(row Row, cfg Config) bool {
			v, ok := row.Rates[dataset.ColHoldRate]
			return ok && v < cfg.Insight.HoldLow
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("hold rate %.2f%% is below %.0f%%; viewers drop off mid-video",
				row.Rates[dataset.ColHoldRate], cfg.Insight.HoldLow)
		},
	},
	{
		name:     "hold-high",
		severity: SeveritySuccess,
		applies: func(row Row, cfg Config) bool {
			v, ok := row.Rates[dataset.ColHoldRate]
			return ok && v > cfg.Insight.HoldHigh
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("hold rate %.2f%% exceeds %.0f%%; retention is strong through the body",
				row.Rates[dataset.ColHoldRate], cfg.Insight.HoldHigh)
		},
	},
	{
		name:     "ctr-low",
		severity: SeverityWarning,
		applies: func(row Row, cfg Config) bool {
			v, ok := row.Rates[dataset.ColCTR]
			return ok && v < cfg.Insight.CTRFloor
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("CTR %.2f%% is under %.2f%%; the call to action is not landing",
				row.Rates[dataset.ColCTR], cfg.Insight.CTRFloor)
		},
	},
	{
		name:     "watch-low",
		severity: SeverityCritical,
		applies: func(row Row, cfg Config) bool {
			return row.HasWatchTime && row.WatchTime < cfg.Insight.WatchLow
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("average watch time %.1fs is under %.0fs; the video needs optimization",
				row.WatchTime, cfg.Insight.WatchLow)
		},
	},
	{
		name:     "watch-high",
		severity: SeveritySuccess,
		applies: func(row Row, cfg Config) bool {
			return row.HasWatchTime && row.WatchTime > cfg.Insight.WatchHigh
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("average watch time %.1fs tops %.0fs; treat this creative as a template",
				row.WatchTime, cfg.Insight.WatchHigh)
		},
	},
	{
		name:     "urgent-action",
		severity: SeverityCritical,
		applies: func(row Row, cfg Config) bool {
			return row.HasOverall && row.OverallScore < cfg.Insight.OverallPause
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("overall score %d is below %d; candidate to pause",
				row.OverallScore, cfg.Insight.OverallPause)
		},
	},
	{
		name:     "quick-win",
		severity: SeverityInfo,
		applies: func(row Row, cfg Config) bool {
			return row.HasOverall &&
				row.OverallScore >= cfg.Insight.QuickWinLow &&
				row.OverallScore <= cfg.Insight.QuickWinHigh
		},
		message: func(row Row, cfg Config) string {
			return fmt.Sprintf("overall score %d is just short of excellent; a small lift crosses 80",
				row.OverallScore)
		},
	},
}

// evaluateInsights runs the rule table over every row in order. The output
// is ordered by row, then by rule declaration.
func evaluateInsights(rows []Row, cfg Config) []Insight {
	var out []Insight
	for _, row := range rows {
		for _, r := range insightRules {
			if !r.applies(row, cfg) {
				continue
			}
			out = append(out, Insight{
				Rule:     r.name,
				Subject:  row.Record.Name,
				Severity: r.severity,
				Message:  r.message(row, cfg),
			})
		}
	}
	return out
}

// evaluateRecommendations produces dataset-level suggestions from counts of
// creatives beyond the recommendation thresholds.
func evaluateRecommendations(rows []Row, s dataset.Schema, cfg Config) []Insight {
	countRate := func(col dataset.Column, pred func(float64) bool) int {
		n := 0
		for _, row := range rows {
			if v, ok := row.Rates[col]; ok && pred(v) {
				n++
			}
		}
		return n
	}
	countROAS := func(pred func(float64) bool) int {
		n := 0
		for _, row := range rows {
			v, ok := row.Rates[dataset.ColROAS]
			if !ok && s[dataset.ColROAS] {
				v, ok = row.Record.Metric(dataset.ColROAS), true
			}
			if ok && pred(v) {
				n++
			}
		}
		return n
	}

	var out []Insight
	add := func(rule string, sev Severity, n int, format string, args ...any) {
		if n == 0 {
			return
		}
		out = append(out, Insight{
			Rule:     rule,
			Subject:  "dataset",
			Severity: sev,
			Message:  fmt.Sprintf(format, append([]any{n}, args...)...),
		})
	}

	r := cfg.Recommend
	add("rec-hook-low", SeverityWarning,
		countRate(dataset.ColHookRate, func(v float64) bool { return v < r.HookLow }),
		"%d creative(s) have a hook rate below %.0f%%; test new opening three seconds", r.HookLow)
	add("rec-hook-high", SeveritySuccess,
		countRate(dataset.ColHookRate, func(v float64) bool { return v > r.HookHigh }),
		"%d creative(s) have exceptional hook rates (>%.0f%%); use these openings as templates", r.HookHigh)
	add("rec-hold-low", SeverityWarning,
		countRate(dataset.ColHoldRate, func(v float64) bool { return v < r.HoldLow }),
		"%d creative(s) have a hold rate below %.0f%%; review middle content for engagement issues", r.HoldLow)
	add("rec-hold-high", SeveritySuccess,
		countRate(dataset.ColHoldRate, func(v float64) bool { return v > r.HoldHigh }),
		"%d creative(s) have excellent hold rates (>%.0f%%); analyze them for best practices", r.HoldHigh)
	add("rec-roas-good", SeveritySuccess,
		countROAS(func(v float64) bool { return v > r.ROASGood }),
		"%d creative(s) are highly profitable (ROAS > %.0fx); increase budget allocation", r.ROASGood)
	add("rec-roas-bad", SeverityCritical,
		countROAS(func(v float64) bool { return v < r.ROASBad }),
		"%d creative(s) are unprofitable (ROAS < %.0fx); consider pausing or reworking them", r.ROASBad)

	return out
}
