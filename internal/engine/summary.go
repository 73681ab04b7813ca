// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"sort"

	"github.com/mktlabs/adlens/internal/dataset"
)

// Summary aggregates a result set: row count, per-column means, and the
// top/bottom performers by the active sort key.
type Summary struct {
	Count   int                            `json:"count"`
	Means   map[dataset.Column]float64     `json:"means"`
	SortKey dataset.Column                 `json:"sort_key"`
	Top     []Row                          `json:"top"`
	Bottom  []Row                          `json:"bottom"`
}

// Summarize aggregates rows. Ties in the sort key keep original row order
// (stable sort). Zero rows fail with ErrEmptyDataset rather than producing
// a NaN-bearing summary.
func Summarize(rows []Row, cfg Config) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, fmt.Errorf("summarize: %w", ErrEmptyDataset)
	}

	key := chooseSortKey(rows, cfg.SortKey)

	sum := Summary{
		Count:   len(rows),
		Means:   columnMeans(rows),
		SortKey: key,
	}

	n := cfg.TopN
	if n <= 0 {
		n = 3
	}
	if n > len(rows) {
		n = len(rows)
	}

	desc := make([]Row, len(rows))
	copy(desc, rows)
	sort.SliceStable(desc, func(i, j int) bool {
		return sortValue(desc[i], key) > sortValue(desc[j], key)
	})
	sum.Top = desc[:n:n]

	asc := make([]Row, len(rows))
	copy(asc, rows)
	sort.SliceStable(asc, func(i, j int) bool {
		return sortValue(asc[i], key) < sortValue(asc[j], key)
	})
	sum.Bottom = asc[:n:n]

	return sum, nil
}

// chooseSortKey keeps the preferred key when at least one row carries it,
// then falls back to hook rate, then to the first derived rate any row has.
// With no derived columns at all every value sorts as 0 and the stable sort
// preserves input order.
func chooseSortKey(rows []Row, preferred dataset.Column) dataset.Column {
	hasKey := func(key dataset.Column) bool {
		for _, row := range rows {
			if _, ok := rowValue(row, key); ok {
				return true
			}
		}
		return false
	}
	if preferred != "" && hasKey(preferred) {
		return preferred
	}
	if hasKey(dataset.ColHookRate) {
		return dataset.ColHookRate
	}
	for _, row := range rows {
		for _, c := range []dataset.Column{
			dataset.ColThumbStopRate, dataset.ColHoldRate, dataset.ColCTR,
			dataset.ColRetention15s, dataset.ColConversionRate, dataset.ColROAS,
		} {
			if _, ok := row.Rates[c]; ok {
				return c
			}
		}
		break
	}
	return preferred
}

// rowValue looks a column up across the row's derived and raw values.
func rowValue(row Row, key dataset.Column) (float64, bool) {
	if key == dataset.ColOverallScore {
		return float64(row.OverallScore), row.HasOverall
	}
	if v, ok := row.Rates[key]; ok {
		return v, true
	}
	if v, ok := row.Scores[key]; ok {
		return v, true
	}
	if v, ok := row.Record.Metrics[key]; ok {
		return v, true
	}
	return 0, false
}

func sortValue(row Row, key dataset.Column) float64 {
	v, _ := rowValue(row, key)
	return v
}

// columnMeans averages every derived rate and score column plus the raw
// ROAS, over the rows that carry them.
func columnMeans(rows []Row) map[dataset.Column]float64 {
	sums := make(map[dataset.Column]float64)
	counts := make(map[dataset.Column]int)

	accumulate := func(c dataset.Column, v float64) {
		sums[c] += v
		counts[c]++
	}

	for _, row := range rows {
		for c, v := range row.Rates {
			accumulate(c, v)
		}
		for c, v := range row.Scores {
			accumulate(c, v)
		}
		if row.HasOverall {
			accumulate(dataset.ColOverallScore, float64(row.OverallScore))
		}
		if v, ok := row.Record.Metrics[dataset.ColROAS]; ok {
			accumulate(dataset.ColROAS, v)
		}
	}

	means := make(map[dataset.Column]float64, len(sums))
	for c, s := range sums {
		means[c] = round2(s / float64(counts[c]))
	}
	return means
}
