// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"math"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Tier is the discrete performance bucket derived from the overall score.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierAverage   Tier = "Average"
	TierPoor      Tier = "Poor"
)

// TierFor maps a 0-100 overall score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierAverage
	default:
		return TierPoor
	}
}

// ThresholdTierScore maps a nonnegative rate to 0-100 using good/medium
// breakpoints: score(medium) = 50, score(good) = 70, saturating at 100.
// Total and monotonic for any band with good > medium > 0.
func ThresholdTierScore(x, good, medium float64) float64 {
	switch {
	case x >= good:
		return math.Min(100, 70+math.Min(30, (x-good)*2))
	case x >= medium:
		return 50 + (x-medium)/(good-medium)*19
	default:
		return math.Max(0, x/medium*49)
	}
}

// BenchmarkRatioScore maps a nonnegative rate to 0-100 against a single
// benchmark: at the benchmark scores 50, at double the benchmark 100.
func BenchmarkRatioScore(x, benchmark float64) float64 {
	s := x / benchmark * 50
	if s < 0 {
		return 0
	}
	return math.Min(100, s)
}

// scoredMetric binds a rate column to its score column and the config
// values the two policies read.
type scoredMetric struct {
	rate      dataset.Column
	score     dataset.Column
	benchmark func(Benchmarks) float64
	band      func(Bands) Band
}

// scoredMetrics lists every rate that maps to a score, in export order.
var scoredMetrics = []scoredMetric{
	{dataset.ColHookRate, dataset.ColHookScore,
		func(b Benchmarks) float64 { return b.Hook },
		func(b Bands) Band { return b.Hook }},
	{dataset.ColThumbStopRate, dataset.ColThumbStopScore,
		func(b Benchmarks) float64 { return b.ThumbStop },
		func(b Bands) Band { return b.ThumbStop }},
	{dataset.ColHoldRate, dataset.ColHoldScore,
		func(b Benchmarks) float64 { return b.Hold },
		func(b Bands) Band { return b.Hold }},
	{dataset.ColCTR, dataset.ColCTRScore,
		func(b Benchmarks) float64 { return b.CTR },
		func(b Bands) Band { return b.CTR }},
	{dataset.ColRetention15s, dataset.ColRetentionScore,
		func(b Benchmarks) float64 { return b.Retention15s },
		func(b Bands) Band { return b.Retention15s }},
}

// DerivedScores returns the score columns that follow from a set of rate
// columns, in export order.
func DerivedScores(rates []dataset.Column) []dataset.Column {
	present := make(map[dataset.Column]bool, len(rates))
	for _, c := range rates {
		present[c] = true
	}
	var out []dataset.Column
	for _, m := range scoredMetrics {
		if present[m.rate] {
			out = append(out, m.score)
		}
	}
	return out
}

// computeScores applies the configured policy to every scorable rate.
// Scores are rounded to one decimal and always land in [0, 100].
func computeScores(rates map[dataset.Column]float64, cfg Config) map[dataset.Column]float64 {
	scores := make(map[dataset.Column]float64)
	for _, m := range scoredMetrics {
		x, ok := rates[m.rate]
		if !ok {
			continue
		}
		var s float64
		if cfg.Policy == PolicyBenchmark {
			s = BenchmarkRatioScore(x, m.benchmark(cfg.Benchmarks))
		} else {
			band := m.band(cfg.Bands)
			s = ThresholdTierScore(x, band.Good, band.Medium)
		}
		scores[m.score] = math.Round(s*10) / 10
	}
	return scores
}

// overallScore is the rounded arithmetic mean of whichever individual
// scores are present. The second return is false when no metric scored.
func overallScore(scores map[dataset.Column]float64) (int, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, m := range scoredMetrics {
		if s, ok := scores[m.score]; ok {
			sum += s
		}
	}
	return int(math.Round(sum / float64(len(scores)))), true
}
