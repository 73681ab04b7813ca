// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktlabs/adlens/internal/dataset"
)

func record(metrics map[dataset.Column]float64) dataset.Record {
	return dataset.Record{Name: "A", Metrics: metrics}
}

func schemaOf(cols ...dataset.Column) dataset.Schema {
	s := make(dataset.Schema)
	for _, c := range cols {
		s[c] = true
	}
	return s
}

func TestComputeRates_HookRate(t *testing.T) {
	s := schemaOf(dataset.ColImpressions, dataset.ColThreeSecondViews)
	rates, estimated := computeRates(record(map[dataset.Column]float64{
		dataset.ColImpressions:      10000,
		dataset.ColThreeSecondViews: 500,
	}), s, newEstimator(nil))

	assert.False(t, estimated)
	assert.InDelta(t, 5.00, rates[dataset.ColHookRate], 1e-9)
}

func TestComputeRates_HoldRateZeroNumerator(t *testing.T) {
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColThruplayActions)
	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews: 800,
		dataset.ColThruplayActions:  0,
	}), s, newEstimator(nil))

	v, ok := rates[dataset.ColHoldRate]
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestComputeRates_HoldRateZeroDenominator(t *testing.T) {
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColThruplayActions)
	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews: 0,
		dataset.ColThruplayActions:  0,
	}), s, newEstimator(nil))

	v, ok := rates[dataset.ColHoldRate]
	require.True(t, ok)
	assert.Equal(t, 0.0, v, "zero denominator must resolve to 0, not NaN")
}

func TestComputeRates_ZeroImpressionsGuarded(t *testing.T) {
	// impressions = 0 is a valid degenerate input; every ratio is guarded.
	s := schemaOf(dataset.ColImpressions, dataset.ColThreeSecondViews, dataset.ColLinkClicks)
	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColImpressions:      0,
		dataset.ColThreeSecondViews: 10,
		dataset.ColLinkClicks:       5,
	}), s, newEstimator(nil))

	assert.Equal(t, 0.0, rates[dataset.ColHookRate])
	assert.Equal(t, 0.0, rates[dataset.ColCTR])
}

func TestDerivedRates_OmissionInvariant(t *testing.T) {
	// No impressions column: neither hook rate nor CTR may appear.
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColLinkClicks, dataset.ColThruplayActions)
	cols := DerivedRates(s)

	assert.NotContains(t, cols, dataset.ColHookRate)
	assert.NotContains(t, cols, dataset.ColCTR)
	assert.Contains(t, cols, dataset.ColHoldRate)

	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews: 100,
		dataset.ColLinkClicks:       10,
		dataset.ColThruplayActions:  50,
	}), s, newEstimator(nil))
	_, hasHook := rates[dataset.ColHookRate]
	assert.False(t, hasHook, "absent input columns must omit the derived column entirely")
}

func TestComputeRates_MeasuredRetention(t *testing.T) {
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColFifteenSecondViews)
	rates, estimated := computeRates(record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews:   400,
		dataset.ColFifteenSecondViews: 100,
	}), s, newEstimator(nil))

	assert.False(t, estimated)
	assert.InDelta(t, 25.0, rates[dataset.ColRetention15s], 1e-9)
}

func TestComputeRates_EstimatedRetentionDeterministic(t *testing.T) {
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColThruplayActions)
	rec := record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews: 1000,
		dataset.ColThruplayActions:  300, // hold rate 30%
	})

	first, estimated := computeRates(rec, s, newEstimator(nil))
	require.True(t, estimated)
	second, _ := computeRates(rec, s, newEstimator(nil))

	assert.Equal(t, first[dataset.ColRetention15s], second[dataset.ColRetention15s])
	assert.InDelta(t, retentionIntercept+retentionSlope*30, first[dataset.ColRetention15s], 1e-9)
}

func TestComputeRates_SeededEstimateReproducible(t *testing.T) {
	s := schemaOf(dataset.ColThreeSecondViews, dataset.ColThruplayActions)
	rec := record(map[dataset.Column]float64{
		dataset.ColThreeSecondViews: 1000,
		dataset.ColThruplayActions:  300,
	})
	seed := int64(42)

	first, _ := computeRates(rec, s, newEstimator(&seed))
	second, _ := computeRates(rec, s, newEstimator(&seed))

	assert.Equal(t, first[dataset.ColRetention15s], second[dataset.ColRetention15s])
	base := retentionIntercept + retentionSlope*30
	assert.InDelta(t, base, first[dataset.ColRetention15s], retentionJitter+1e-9)
}

func TestComputeRates_DerivedROAS(t *testing.T) {
	s := schemaOf(dataset.ColRevenue, dataset.ColCost)
	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColRevenue: 250,
		dataset.ColCost:    100,
	}), s, newEstimator(nil))

	assert.InDelta(t, 2.5, rates[dataset.ColROAS], 1e-9)
}

func TestDerivedRates_RawROASNotRederived(t *testing.T) {
	s := schemaOf(dataset.ColRevenue, dataset.ColCost, dataset.ColROAS)
	assert.NotContains(t, DerivedRates(s), dataset.ColROAS)
}

func TestComputeRates_ConversionRate(t *testing.T) {
	s := schemaOf(dataset.ColConversions, dataset.ColLinkClicks)
	rates, _ := computeRates(record(map[dataset.Column]float64{
		dataset.ColConversions: 5,
		dataset.ColLinkClicks:  200,
	}), s, newEstimator(nil))

	assert.InDelta(t, 2.5, rates[dataset.ColConversionRate], 1e-9)
}
