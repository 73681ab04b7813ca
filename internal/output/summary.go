// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"time"

	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
)

func init() {
	RegisterFormatter(NewSummaryFormatter())
}

// SummaryFormatter writes the plain-text performance report: overview
// averages, top/bottom highlights, and recommendations. The layout follows
// the copyable report of the legacy dashboard.
type SummaryFormatter struct {
	// nowFunc is injectable for testing.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*SummaryFormatter)(nil)

// NewSummaryFormatter returns a new SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Name returns the format name.
func (f *SummaryFormatter) Name() string { return "summary" }

// Format writes the text report to w.
func (f *SummaryFormatter) Format(result *engine.Result, source string, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	p := func(format string, args ...any) {
		_, _ = fmt.Fprintf(w, format, args...)
	}

	p("CREATIVE PERFORMANCE REPORT\n")
	p("Source: %s\n", source)
	p("Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	p("OVERVIEW:\n")
	p("- Total creatives: %d\n", result.Summary.Count)
	means := result.Summary.Means
	writeMean := func(label string, col dataset.Column, suffix string) {
		if v, ok := means[col]; ok {
			p("- %s: %.1f%s\n", label, v, suffix)
		}
	}
	writeMean("Avg hook rate", dataset.ColHookRate, "%")
	writeMean("Avg thumb-stop rate", dataset.ColThumbStopRate, "%")
	writeMean("Avg hold rate", dataset.ColHoldRate, "%")
	writeMean("Avg CTR", dataset.ColCTR, "%")
	writeMean("Avg 15s retention", dataset.ColRetention15s, "%")
	if v, ok := means[dataset.ColROAS]; ok {
		p("- Avg ROAS: %.2fx\n", v)
	}
	writeMean("Avg overall score", dataset.ColOverallScore, "")
	if result.RetentionEstimated {
		p("- Note: 15s retention is estimated from hold rate, not measured\n")
	}

	key := result.Summary.SortKey
	p("\nTOP PERFORMERS (by %s):\n", key)
	writeRanked(p, result.Summary.Top, key)

	p("\nNEEDS IMPROVEMENT (by %s):\n", key)
	writeRanked(p, result.Summary.Bottom, key)

	if len(result.Recommendations) > 0 {
		p("\nRECOMMENDATIONS:\n")
		for _, rec := range result.Recommendations {
			p("- [%s] %s\n", rec.Severity, rec.Message)
		}
	}

	return nil
}

func writeRanked(p func(string, ...any), rows []engine.Row, key dataset.Column) {
	for i, row := range rows {
		value := "-"
		if v, ok := row.Rates[key]; ok {
			value = fmt.Sprintf("%.2f", v)
		} else if v, ok := row.Scores[key]; ok {
			value = fmt.Sprintf("%.2f", v)
		} else if key == dataset.ColOverallScore && row.HasOverall {
			value = fmt.Sprintf("%d", row.OverallScore)
		} else if v, ok := row.Record.Metrics[key]; ok {
			value = fmt.Sprintf("%.2f", v)
		}
		p("%d. %s (%s: %s)\n", i+1, row.Record.Name, key, value)
	}
}
