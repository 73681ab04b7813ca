// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktlabs/adlens/internal/dataset"
)

func rowWithRates(name string, rates map[dataset.Column]float64) Row {
	return Row{
		Record: dataset.Record{Name: name},
		Rates:  rates,
	}
}

func ruleNames(insights []Insight) []string {
	names := make([]string, len(insights))
	for i, in := range insights {
		names[i] = in.Rule
	}
	return names
}

func TestInsights_HookRules(t *testing.T) {
	cfg := DefaultConfig() // hook benchmark 8, factors 0.7 / 1.3

	low := rowWithRates("Low", map[dataset.Column]float64{dataset.ColHookRate: 5})
	high := rowWithRates("High", map[dataset.Column]float64{dataset.ColHookRate: 11})
	mid := rowWithRates("Mid", map[dataset.Column]float64{dataset.ColHookRate: 8})

	out := evaluateInsights([]Row{low, high, mid}, cfg)
	require.Len(t, out, 2)

	assert.Equal(t, "hook-low", out[0].Rule)
	assert.Equal(t, "Low", out[0].Subject)
	assert.Equal(t, SeverityCritical, out[0].Severity)
	assert.Contains(t, out[0].Message, "5.00%")

	assert.Equal(t, "hook-high", out[1].Rule)
	assert.Equal(t, SeveritySuccess, out[1].Severity)
}

func TestInsights_AllApplicableRulesFire(t *testing.T) {
	// One weak creative trips hook, hold, CTR, watch-time and overall rules
	// at once; none short-circuits another.
	cfg := DefaultConfig()
	row := rowWithRates("Weak", map[dataset.Column]float64{
		dataset.ColHookRate: 1,
		dataset.ColHoldRate: 5,
		dataset.ColCTR:      0.1,
	})
	row.WatchTime = 2
	row.HasWatchTime = true
	row.OverallScore = 12
	row.HasOverall = true

	out := evaluateInsights([]Row{row}, cfg)
	assert.Equal(t, []string{"hook-low", "hold-low", "ctr-low", "watch-low", "urgent-action"}, ruleNames(out))
}

func TestInsights_DeclarationOrderWithinRecord(t *testing.T) {
	cfg := DefaultConfig()
	row := rowWithRates("Star", map[dataset.Column]float64{
		dataset.ColHookRate: 12,
		dataset.ColHoldRate: 55,
	})
	row.WatchTime = 20
	row.HasWatchTime = true
	row.OverallScore = 75
	row.HasOverall = true

	out := evaluateInsights([]Row{row}, cfg)
	assert.Equal(t, []string{"hook-high", "hold-high", "watch-high", "quick-win"}, ruleNames(out))
	assert.Equal(t, SeverityInfo, out[3].Severity)
}

func TestInsights_MissingColumnsAreSilent(t *testing.T) {
	cfg := DefaultConfig()
	row := rowWithRates("Bare", nil)
	assert.Empty(t, evaluateInsights([]Row{row}, cfg))
}

func TestInsights_QuickWinBounds(t *testing.T) {
	cfg := DefaultConfig()
	for score, want := range map[int]bool{69: false, 70: true, 79: true, 80: false} {
		row := rowWithRates("X", nil)
		row.OverallScore = score
		row.HasOverall = true
		out := evaluateInsights([]Row{row}, cfg)
		if want {
			require.Len(t, out, 1, "score %d", score)
			assert.Equal(t, "quick-win", out[0].Rule)
		} else {
			assert.Empty(t, out, "score %d", score)
		}
	}
}

func TestRecommendations_Counts(t *testing.T) {
	cfg := DefaultConfig()
	rows := []Row{
		rowWithRates("A", map[dataset.Column]float64{dataset.ColHookRate: 1, dataset.ColHoldRate: 10}),
		rowWithRates("B", map[dataset.Column]float64{dataset.ColHookRate: 2, dataset.ColHoldRate: 40}),
		rowWithRates("C", map[dataset.Column]float64{dataset.ColHookRate: 9, dataset.ColHoldRate: 25}),
	}
	out := evaluateRecommendations(rows, schemaOf(), cfg)

	names := ruleNames(out)
	assert.Equal(t, []string{"rec-hook-low", "rec-hook-high", "rec-hold-low", "rec-hold-high"}, names)
	assert.Contains(t, out[0].Message, "2 creative(s)")
	assert.Equal(t, "dataset", out[0].Subject)
}

func TestRecommendations_ROASFromRawColumn(t *testing.T) {
	cfg := DefaultConfig()
	s := schemaOf(dataset.ColROAS)
	rows := []Row{
		{Record: dataset.Record{Name: "P", Metrics: map[dataset.Column]float64{dataset.ColROAS: 4.5}}},
		{Record: dataset.Record{Name: "U", Metrics: map[dataset.Column]float64{dataset.ColROAS: 0.4}}},
	}
	out := evaluateRecommendations(rows, s, cfg)

	assert.Equal(t, []string{"rec-roas-good", "rec-roas-bad"}, ruleNames(out))
	assert.Equal(t, SeverityCritical, out[1].Severity)
}

func TestRecommendations_NoneWhenNothingTrips(t *testing.T) {
	cfg := DefaultConfig()
	rows := []Row{
		rowWithRates("A", map[dataset.Column]float64{dataset.ColHookRate: 5, dataset.ColHoldRate: 20}),
	}
	assert.Empty(t, evaluateRecommendations(rows, schemaOf(), cfg))
}
