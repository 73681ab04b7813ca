// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"strings"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Policy selects how rates map to 0-100 scores. One policy is chosen per
// run and applied to every scored metric.
type Policy string

const (
	// PolicyThreshold is the threshold-tier mapping with breakpoints at
	// score 50 (medium) and score 70 (good).
	PolicyThreshold Policy = "threshold"

	// PolicyBenchmark is the benchmark-ratio mapping: at benchmark scores
	// 50, at double benchmark saturates at 100.
	PolicyBenchmark Policy = "benchmark"
)

// Benchmarks holds the reference values rates are compared against.
// Percentages except AvgWatchTime, which is seconds.
type Benchmarks struct {
	Hook         float64 `yaml:"hook" toml:"hook"`
	ThumbStop    float64 `yaml:"thumbstop" toml:"thumbstop"`
	Hold         float64 `yaml:"hold" toml:"hold"`
	CTR          float64 `yaml:"ctr" toml:"ctr"`
	Retention15s float64 `yaml:"retention_15s" toml:"retention_15s"`
	AvgWatchTime float64 `yaml:"avg_watch_time" toml:"avg_watch_time"`
}

// Band is a good/medium threshold pair for the threshold-tier policy.
type Band struct {
	Good   float64 `yaml:"good" toml:"good"`
	Medium float64 `yaml:"medium" toml:"medium"`
}

// Bands holds per-metric threshold-tier pairs.
type Bands struct {
	Hook         Band `yaml:"hook" toml:"hook"`
	ThumbStop    Band `yaml:"thumbstop" toml:"thumbstop"`
	Hold         Band `yaml:"hold" toml:"hold"`
	CTR          Band `yaml:"ctr" toml:"ctr"`
	Retention15s Band `yaml:"retention_15s" toml:"retention_15s"`
}

// InsightThresholds parameterize the per-creative insight rules.
type InsightThresholds struct {
	HookLowFactor  float64 `yaml:"hook_low_factor" toml:"hook_low_factor"`
	HookHighFactor float64 `yaml:"hook_high_factor" toml:"hook_high_factor"`
	HoldLow        float64 `yaml:"hold_low" toml:"hold_low"`
	HoldHigh       float64 `yaml:"hold_high" toml:"hold_high"`
	CTRFloor       float64 `yaml:"ctr_floor" toml:"ctr_floor"`
	WatchLow       float64 `yaml:"watch_low" toml:"watch_low"`
	WatchHigh      float64 `yaml:"watch_high" toml:"watch_high"`
	OverallPause   int     `yaml:"overall_pause" toml:"overall_pause"`
	QuickWinLow    int     `yaml:"quick_win_low" toml:"quick_win_low"`
	QuickWinHigh   int     `yaml:"quick_win_high" toml:"quick_win_high"`
}

// RecommendThresholds parameterize the dataset-level recommendations.
type RecommendThresholds struct {
	HookLow  float64 `yaml:"hook_low" toml:"hook_low"`
	HookHigh float64 `yaml:"hook_high" toml:"hook_high"`
	HoldLow  float64 `yaml:"hold_low" toml:"hold_low"`
	HoldHigh float64 `yaml:"hold_high" toml:"hold_high"`
	ROASGood float64 `yaml:"roas_good" toml:"roas_good"`
	ROASBad  float64 `yaml:"roas_bad" toml:"roas_bad"`
}

// Config is the full engine configuration. It is a plain value passed into
// every engine call; the engine keeps no state between invocations.
type Config struct {
	Policy     Policy
	Benchmarks Benchmarks
	Bands      Bands
	Insight    InsightThresholds
	Recommend  RecommendThresholds

	// SortKey orders the summary's top/bottom lists. Must be a column the
	// run actually produces; Summarize falls back to hook rate, then name
	// order, when absent.
	SortKey dataset.Column

	// TopN is how many records the summary's top/bottom lists carry.
	TopN int

	// EstimateSeed, when non-nil, enables the legacy randomized retention
	// estimate with the given seed. Nil means the deterministic fit.
	EstimateSeed *int64
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		Policy: PolicyThreshold,
		Benchmarks: Benchmarks{
			Hook:         8,
			ThumbStop:    25,
			Hold:         35,
			CTR:          1.5,
			Retention15s: 25,
			AvgWatchTime: 12,
		},
		Bands: Bands{
			Hook:         Band{Good: 7, Medium: 3},
			ThumbStop:    Band{Good: 30, Medium: 20},
			Hold:         Band{Good: 40, Medium: 20},
			CTR:          Band{Good: 1.5, Medium: 0.5},
			Retention15s: Band{Good: 35, Medium: 20},
		},
		Insight: InsightThresholds{
			HookLowFactor:  0.7,
			HookHighFactor: 1.3,
			HoldLow:        20,
			HoldHigh:       40,
			CTRFloor:       0.5,
			WatchLow:       5,
			WatchHigh:      15,
			OverallPause:   40,
			QuickWinLow:    70,
			QuickWinHigh:   79,
		},
		Recommend: RecommendThresholds{
			HookLow:  3,
			HookHigh: 7,
			HoldLow:  15,
			HoldHigh: 30,
			ROASGood: 2,
			ROASBad:  1,
		},
		SortKey: dataset.ColOverallScore,
		TopN:    3,
	}
}

// Validate checks every field used as a divisor or bound and reports all
// violations at once, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []string

	switch c.Policy {
	case PolicyThreshold, PolicyBenchmark:
	default:
		errs = append(errs, fmt.Sprintf("policy: unknown value %q (must be threshold or benchmark)", c.Policy))
	}

	benchmarks := []struct {
		name  string
		value float64
	}{
		{"hook", c.Benchmarks.Hook},
		{"thumbstop", c.Benchmarks.ThumbStop},
		{"hold", c.Benchmarks.Hold},
		{"ctr", c.Benchmarks.CTR},
		{"retention_15s", c.Benchmarks.Retention15s},
		{"avg_watch_time", c.Benchmarks.AvgWatchTime},
	}
	for _, b := range benchmarks {
		if b.value <= 0 {
			errs = append(errs, fmt.Sprintf("benchmarks.%s: must be positive, got %g", b.name, b.value))
		}
	}

	bands := []struct {
		name string
		band Band
	}{
		{"hook", c.Bands.Hook},
		{"thumbstop", c.Bands.ThumbStop},
		{"hold", c.Bands.Hold},
		{"ctr", c.Bands.CTR},
		{"retention_15s", c.Bands.Retention15s},
	}
	for _, b := range bands {
		if b.band.Medium <= 0 {
			errs = append(errs, fmt.Sprintf("bands.%s.medium: must be positive, got %g", b.name, b.band.Medium))
		}
		if b.band.Good <= b.band.Medium {
			errs = append(errs, fmt.Sprintf("bands.%s: good (%g) must exceed medium (%g)", b.name, b.band.Good, b.band.Medium))
		}
	}

	if c.TopN <= 0 {
		errs = append(errs, fmt.Sprintf("top_n: must be positive, got %d", c.TopN))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(errs, "\n  "))
	}
	return nil
}
