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
	Register(&leadersSection{})
}

// leadersSection shows the top and bottom performers by the summary's
// sort key.
type leadersSection struct {
	sortKey dataset.Column
	top     []engine.Row
	bottom  []engine.Row
}

func (s *leadersSection) Name() string        { return "leaders" }
func (s *leadersSection) Description() string { return "Top and bottom performers by sort key" }

func (s *leadersSection) Analyze(result *engine.Result) error {
	s.sortKey = result.Summary.SortKey
	s.top = result.Summary.Top
	s.bottom = result.Summary.Bottom
	if len(s.top) == 0 {
		return fmt.Errorf("leaders: %w", ErrColumnsNotAvailable)
	}
	return nil
}

func (s *leadersSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(fmt.Sprintf("Leaders (by %s)", s.sortKey)))
	_, _ = fmt.Fprintf(w, "-------\n\n")

	render := func(label string, printer func(...any) string, rows []engine.Row) error {
		_, _ = fmt.Fprintf(w, "  %s\n", printer(label))
		tbl := NewTable(
			Column{Header: "Creative"},
			Column{Header: "Value", Align: AlignRight},
			Column{Header: "Tier", Color: ColorTier},
		)
		for _, row := range rows {
			tier := "-"
			if row.HasOverall {
				tier = string(row.Tier)
			}
			tbl.AddRow(row.Record.Name, formatLeaderValue(row, s.sortKey), tier)
		}
		return tbl.Render(w)
	}

	if err := render("Top performers", colorGreen.Sprint, s.top); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	if err := render("Need attention", colorYellow.Sprint, s.bottom); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func formatLeaderValue(row engine.Row, key dataset.Column) string {
	if key == dataset.ColOverallScore {
		if !row.HasOverall {
			return "-"
		}
		return fmt.Sprintf("%d", row.OverallScore)
	}
	if v, ok := row.Rates[key]; ok {
		if key == dataset.ColROAS {
			return fmt.Sprintf("%.2fx", v)
		}
		return fmt.Sprintf("%.2f%%", v)
	}
	if v, ok := row.Record.Metrics[key]; ok {
		if key == dataset.ColROAS {
			return fmt.Sprintf("%.2fx", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
	return "-"
}
