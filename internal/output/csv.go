// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
)

func init() {
	RegisterFormatter(&CSVFormatter{})
}

// CSVFormatter writes the augmented table as CSV: the present raw columns
// followed by every derived rate and score column, header row matching
// canonical column names exactly, row order preserved.
type CSVFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*CSVFormatter)(nil)

// Name returns the format name.
func (f *CSVFormatter) Name() string { return "csv" }

// Format writes the augmented table to w.
func (f *CSVFormatter) Format(result *engine.Result, _ string, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(result.Columns))
	for i, c := range result.Columns {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, row := range result.Rows {
		fields := make([]string, len(result.Columns))
		for i, c := range result.Columns {
			fields[i] = cellValue(row, c)
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// cellValue renders one cell of the augmented table.
func cellValue(row engine.Row, c dataset.Column) string {
	if dataset.IsText(c) {
		return row.Record.Text(c)
	}
	switch c {
	case dataset.ColOverallScore:
		if !row.HasOverall {
			return ""
		}
		return strconv.Itoa(row.OverallScore)
	case dataset.ColTier:
		if !row.HasOverall {
			return ""
		}
		return string(row.Tier)
	}
	if v, ok := row.Rates[c]; ok {
		return formatNumber(v)
	}
	if v, ok := row.Scores[c]; ok {
		return formatNumber(v)
	}
	if v, ok := row.Record.Metrics[c]; ok {
		return formatNumber(v)
	}
	return ""
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
