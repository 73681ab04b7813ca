// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"math"
	"math/rand"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Retention estimate: fixed linear fit of hold rate, used when the raw
// 15-second-view column is absent. Jitter only applies in seeded legacy mode.
const (
	retentionSlope     = 0.55
	retentionIntercept = 12.0
	retentionJitter    = 3.0
)

// estimator produces the 15-second retention estimate. With a nil source it
// is fully deterministic; with a seeded source it reproduces the legacy
// noisy estimate.
type estimator struct {
	rnd *rand.Rand
}

func newEstimator(seed *int64) *estimator {
	e := &estimator{}
	if seed != nil {
		e.rnd = rand.New(rand.NewSource(*seed))
	}
	return e
}

// retention estimates retention_15s_pct from a hold rate percentage.
func (e *estimator) retention(holdRate float64) float64 {
	est := retentionIntercept + retentionSlope*holdRate
	if e.rnd != nil {
		est += (e.rnd.Float64()*2 - 1) * retentionJitter
	}
	if est < 0 {
		est = 0
	}
	if est > 100 {
		est = 100
	}
	return round2(est)
}

// DerivedRates returns the rate columns derivable from a schema, in export
// order. A rate is derivable iff every input column is present; this is
// decided once per dataset, never per row.
func DerivedRates(s dataset.Schema) []dataset.Column {
	var out []dataset.Column
	if s.Has(dataset.ColThreeSecondViews, dataset.ColImpressions) {
		out = append(out, dataset.ColHookRate)
	}
	if s.Has(dataset.ColThumbStops, dataset.ColImpressions) {
		out = append(out, dataset.ColThumbStopRate)
	}
	if s.Has(dataset.ColThruplayActions, dataset.ColThreeSecondViews) {
		out = append(out, dataset.ColHoldRate)
	}
	if s.Has(dataset.ColLinkClicks, dataset.ColImpressions) {
		out = append(out, dataset.ColCTR)
	}
	if s.Has(dataset.ColFifteenSecondViews, dataset.ColThreeSecondViews) ||
		s.Has(dataset.ColThruplayActions, dataset.ColThreeSecondViews) {
		out = append(out, dataset.ColRetention15s)
	}
	if s.Has(dataset.ColConversions, dataset.ColLinkClicks) {
		out = append(out, dataset.ColConversionRate)
	}
	if !s[dataset.ColROAS] && s.Has(dataset.ColRevenue, dataset.ColCost) {
		out = append(out, dataset.ColROAS)
	}
	return out
}

// computeRates derives every schema-derivable rate for one record. Zero
// denominators resolve to 0 uniformly; no ratio ever propagates NaN or Inf.
// The second return reports whether retention_15s_pct is an estimate rather
// than a measurement.
func computeRates(rec dataset.Record, s dataset.Schema, est *estimator) (map[dataset.Column]float64, bool) {
	rates := make(map[dataset.Column]float64)
	estimated := false

	for _, col := range DerivedRates(s) {
		switch col {
		case dataset.ColHookRate:
			rates[col] = ratio(rec.Metric(dataset.ColThreeSecondViews), rec.Metric(dataset.ColImpressions))
		case dataset.ColThumbStopRate:
			rates[col] = ratio(rec.Metric(dataset.ColThumbStops), rec.Metric(dataset.ColImpressions))
		case dataset.ColHoldRate:
			rates[col] = ratio(rec.Metric(dataset.ColThruplayActions), rec.Metric(dataset.ColThreeSecondViews))
		case dataset.ColCTR:
			rates[col] = ratio(rec.Metric(dataset.ColLinkClicks), rec.Metric(dataset.ColImpressions))
		case dataset.ColRetention15s:
			if s.Has(dataset.ColFifteenSecondViews, dataset.ColThreeSecondViews) {
				rates[col] = ratio(rec.Metric(dataset.ColFifteenSecondViews), rec.Metric(dataset.ColThreeSecondViews))
			} else {
				hold := ratio(rec.Metric(dataset.ColThruplayActions), rec.Metric(dataset.ColThreeSecondViews))
				rates[col] = est.retention(hold)
				estimated = true
			}
		case dataset.ColConversionRate:
			rates[col] = ratio(rec.Metric(dataset.ColConversions), rec.Metric(dataset.ColLinkClicks))
		case dataset.ColROAS:
			if cost := rec.Metric(dataset.ColCost); cost > 0 {
				rates[col] = round2(rec.Metric(dataset.ColRevenue) / cost)
			} else {
				rates[col] = 0
			}
		}
	}

	return rates, estimated
}

// ratio computes numerator/denominator as a percentage rounded to two
// decimals, with the documented zero-denominator fallback of 0.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return round2(num / den * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
