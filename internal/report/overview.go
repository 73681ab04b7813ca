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
	Register(&overviewSection{})
}

// metricCard is one headline average shown in the overview.
type metricCard struct {
	Label string
	Value string
}

// overviewSection shows dataset-wide averages: the metric cards of the
// dashboard's first tab.
type overviewSection struct {
	count int
	cards []metricCard
}

func (s *overviewSection) Name() string        { return "overview" }
func (s *overviewSection) Description() string { return "Key metric averages across all creatives" }

func (s *overviewSection) Analyze(result *engine.Result) error {
	s.count = result.Summary.Count
	s.cards = nil

	means := result.Summary.Means
	addPct := func(label string, col dataset.Column) {
		if v, ok := means[col]; ok {
			s.cards = append(s.cards, metricCard{label, fmt.Sprintf("%.1f%%", v)})
		}
	}

	addPct("Avg Hook Rate", dataset.ColHookRate)
	addPct("Avg Thumb-Stop Rate", dataset.ColThumbStopRate)
	addPct("Avg Hold Rate", dataset.ColHoldRate)
	addPct("Avg CTR", dataset.ColCTR)
	addPct("Avg 15s Retention", dataset.ColRetention15s)
	if v, ok := means[dataset.ColROAS]; ok {
		s.cards = append(s.cards, metricCard{"Avg ROAS", fmt.Sprintf("%.2fx", v)})
	}
	if v, ok := means[dataset.ColOverallScore]; ok {
		s.cards = append(s.cards, metricCard{"Avg Overall Score", fmt.Sprintf("%.0f", v)})
	}

	if len(s.cards) == 0 {
		return fmt.Errorf("overview: %w", ErrColumnsNotAvailable)
	}
	return nil
}

func (s *overviewSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Key Metrics"))
	_, _ = fmt.Fprintf(w, "-----------\n")
	_, _ = fmt.Fprintf(w, "  %d creative(s) analyzed.\n\n", s.count)

	tbl := NewTable(
		Column{Header: "Metric"},
		Column{Header: "Average", Align: AlignRight},
	)
	for _, c := range s.cards {
		tbl.AddRow(c.Label, c.Value)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
