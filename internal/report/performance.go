// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
)

func init() {
	Register(&performanceSection{})
}

// performanceSection renders the per-creative table with derived rates,
// overall score, and tier.
type performanceSection struct {
	rows      []engine.Row
	rateCols  []dataset.Column
	hasTier   bool
	estimated bool
}

// rateHeaders maps derived rate columns to table headers.
var rateHeaders = map[dataset.Column]string{
	dataset.ColHookRate:       "Hook %",
	dataset.ColThumbStopRate:  "Thumb-Stop %",
	dataset.ColHoldRate:       "Hold %",
	dataset.ColCTR:            "CTR %",
	dataset.ColRetention15s:   "15s Ret %",
	dataset.ColConversionRate: "Conv %",
	dataset.ColROAS:           "ROAS",
}

func (s *performanceSection) Name() string        { return "performance" }
func (s *performanceSection) Description() string { return "Per-creative rates, scores, and tiers" }

func (s *performanceSection) Analyze(result *engine.Result) error {
	s.rows = result.Rows
	s.rateCols = nil
	s.hasTier = false
	s.estimated = result.RetentionEstimated

	for _, col := range result.Columns {
		if _, ok := rateHeaders[col]; ok {
			s.rateCols = append(s.rateCols, col)
		}
		if col == dataset.ColTier {
			s.hasTier = true
		}
	}
	if len(s.rateCols) == 0 {
		return fmt.Errorf("performance: %w", ErrColumnsNotAvailable)
	}
	return nil
}

func (s *performanceSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Creative Performance"))
	_, _ = fmt.Fprintf(w, "--------------------\n\n")

	cols := []Column{{Header: "Creative"}}
	for _, rc := range s.rateCols {
		cols = append(cols, Column{Header: rateHeaders[rc], Align: AlignRight})
	}
	if s.hasTier {
		cols = append(cols, Column{Header: "Score", Align: AlignRight, Color: colorScore})
		cols = append(cols, Column{Header: "Tier", Color: ColorTier})
	}

	tbl := NewTable(cols...)
	for _, row := range s.rows {
		values := []string{row.Record.Name}
		for _, rc := range s.rateCols {
			v, ok := row.Rates[rc]
			if !ok && rc == dataset.ColROAS {
				v, ok = row.Record.Metrics[dataset.ColROAS]
			}
			if !ok {
				values = append(values, "-")
				continue
			}
			if rc == dataset.ColROAS {
				values = append(values, fmt.Sprintf("%.2fx", v))
			} else {
				values = append(values, fmt.Sprintf("%.2f", v))
			}
		}
		if s.hasTier {
			if row.HasOverall {
				values = append(values, fmt.Sprintf("%d", row.OverallScore), string(row.Tier))
			} else {
				values = append(values, "-", "-")
			}
		}
		tbl.AddRow(values...)
	}

	if err := tbl.Render(w); err != nil {
		return err
	}
	if s.estimated {
		_, _ = fmt.Fprintf(w, "\n  15s retention is estimated from hold rate, not measured.\n")
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
