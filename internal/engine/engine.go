// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

// Package engine derives engagement rates, benchmark-relative scores,
// performance tiers, insights, and an aggregate summary from a creative
// performance dataset. It is a pure computation: no I/O, no goroutines,
// and no state shared between invocations.
package engine

import (
	"fmt"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Row is one record augmented with its derived values. A derived column is
// present in Rates/Scores iff the dataset schema allowed computing it; an
// absent column is omitted, never filled with a placeholder zero.
type Row struct {
	Record dataset.Record

	Rates  map[dataset.Column]float64
	Scores map[dataset.Column]float64

	// RetentionEstimated marks retention_15s_pct as a linear-fit estimate
	// rather than a measured value.
	RetentionEstimated bool

	// WatchTime carries the raw average watch time when the schema has it,
	// so insight rules need not re-consult the schema.
	WatchTime    float64
	HasWatchTime bool

	OverallScore int
	HasOverall   bool
	Tier         Tier
}

// Result is the full engine output for one dataset and config.
type Result struct {
	Rows []Row

	// Columns is the augmented column set in export order: present raw
	// columns, then derived rates, then scores, then overall and tier.
	Columns []dataset.Column

	Insights        []Insight
	Recommendations []Insight
	Summary         Summary

	// RetentionEstimated reports that the retention column (if present) is
	// estimated dataset-wide.
	RetentionEstimated bool
}

// Analyze runs the full derivation pipeline: rates, scores, overall/tier,
// insights, recommendations, summary. The input dataset is not modified.
//
// Returns ErrInvalidConfig for unusable thresholds and ErrEmptyDataset for
// a zero-row dataset.
func Analyze(ds *dataset.Dataset, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("analyze: %w", ErrEmptyDataset)
	}

	est := newEstimator(cfg.EstimateSeed)
	hasWatch := ds.Schema[dataset.ColAvgWatchTime]

	rows := make([]Row, 0, ds.Len())
	anyEstimated := false
	for _, rec := range ds.Records {
		rates, estimated := computeRates(rec, ds.Schema, est)
		scores := computeScores(rates, cfg)
		overall, hasOverall := overallScore(scores)

		row := Row{
			Record:             rec,
			Rates:              rates,
			Scores:             scores,
			RetentionEstimated: estimated,
			OverallScore:       overall,
			HasOverall:         hasOverall,
		}
		if hasOverall {
			row.Tier = TierFor(overall)
		}
		if hasWatch {
			row.WatchTime = rec.Metric(dataset.ColAvgWatchTime)
			row.HasWatchTime = true
		}
		anyEstimated = anyEstimated || estimated
		rows = append(rows, row)
	}

	summary, err := Summarize(rows, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Rows:               rows,
		Columns:            resultColumns(ds.Schema),
		Insights:           evaluateInsights(rows, cfg),
		Recommendations:    evaluateRecommendations(rows, ds.Schema, cfg),
		Summary:            summary,
		RetentionEstimated: anyEstimated,
	}, nil
}

// resultColumns builds the augmented export column order from the schema.
func resultColumns(s dataset.Schema) []dataset.Column {
	cols := s.Columns()
	rates := DerivedRates(s)
	cols = append(cols, rates...)
	scores := DerivedScores(rates)
	cols = append(cols, scores...)
	if len(scores) > 0 {
		cols = append(cols, dataset.ColOverallScore, dataset.ColTier)
	}
	return cols
}
