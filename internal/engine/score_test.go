// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mktlabs/adlens/internal/dataset"
)

func TestThresholdTierScore_Breakpoints(t *testing.T) {
	// Continuous at both breakpoints: score(medium) = 50, score(good) = 70.
	assert.InDelta(t, 50.0, ThresholdTierScore(3, 7, 3), 1e-9)
	assert.InDelta(t, 70.0, ThresholdTierScore(7, 7, 3), 1e-9)
}

func TestThresholdTierScore_Range(t *testing.T) {
	for x := 0.0; x <= 120; x += 0.25 {
		s := ThresholdTierScore(x, 7, 3)
		assert.GreaterOrEqual(t, s, 0.0, "x=%g", x)
		assert.LessOrEqual(t, s, 100.0, "x=%g", x)
	}
}

func TestThresholdTierScore_Monotonic(t *testing.T) {
	prev := -1.0
	for x := 0.0; x <= 60; x += 0.1 {
		s := ThresholdTierScore(x, 7, 3)
		assert.GreaterOrEqual(t, s+1e-9, prev, "x=%g", x)
		prev = s
	}
}

func TestBenchmarkRatioScore(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		benchmark float64
		want      float64
	}{
		{"at benchmark", 8, 8, 50},
		{"double benchmark saturates", 16, 8, 100},
		{"beyond double stays capped", 40, 8, 100},
		{"half benchmark", 4, 8, 25},
		{"zero rate", 0, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BenchmarkRatioScore(tt.rate, tt.benchmark), 1e-9)
		})
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{90, TierExcellent},
		{80, TierExcellent},
		{75, TierGood},
		{60, TierGood},
		{55, TierAverage},
		{40, TierAverage},
		{35, TierPoor},
		{20, TierPoor},
		{0, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %d", tt.score)
	}
}

func TestComputeScores_PolicyBenchmark(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyBenchmark

	rates := map[dataset.Column]float64{dataset.ColHookRate: 8}
	scores := computeScores(rates, cfg)
	assert.InDelta(t, 50.0, scores[dataset.ColHookScore], 1e-9)
}

func TestComputeScores_OnlyScorableRates(t *testing.T) {
	cfg := DefaultConfig()
	rates := map[dataset.Column]float64{
		dataset.ColHookRate:       5,
		dataset.ColConversionRate: 2, // not scored
		dataset.ColROAS:           3, // not scored
	}
	scores := computeScores(rates, cfg)
	assert.Len(t, scores, 1)
	assert.Contains(t, scores, dataset.ColHookScore)
}

func TestComputeScores_RangeProperty(t *testing.T) {
	for _, policy := range []Policy{PolicyThreshold, PolicyBenchmark} {
		cfg := DefaultConfig()
		cfg.Policy = policy
		for x := 0.0; x <= 200; x += 1.7 {
			scores := computeScores(map[dataset.Column]float64{
				dataset.ColHookRate:      x,
				dataset.ColHoldRate:      x,
				dataset.ColCTR:           x,
				dataset.ColRetention15s:  x,
				dataset.ColThumbStopRate: x,
			}, cfg)
			for col, s := range scores {
				assert.GreaterOrEqual(t, s, 0.0, "%s policy %s x=%g", col, policy, x)
				assert.LessOrEqual(t, s, 100.0, "%s policy %s x=%g", col, policy, x)
			}
		}
	}
}

func TestOverallScore_MeanOfPresent(t *testing.T) {
	scores := map[dataset.Column]float64{
		dataset.ColHookScore: 80,
		dataset.ColHoldScore: 61,
	}
	overall, ok := overallScore(scores)
	assert.True(t, ok)
	assert.Equal(t, 71, overall) // round(70.5)
}

func TestOverallScore_NoScores(t *testing.T) {
	_, ok := overallScore(nil)
	assert.False(t, ok)
}
