// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/mktlabs/adlens/internal/engine"
)

func init() {
	Register(&insightsSection{})
}

// insightsSection lists per-creative insights followed by dataset-level
// recommendations, in engine order.
type insightsSection struct {
	insights        []engine.Insight
	recommendations []engine.Insight
}

func (s *insightsSection) Name() string { return "insights" }
func (s *insightsSection) Description() string {
	return "Per-creative insights and dataset recommendations"
}

func (s *insightsSection) Analyze(result *engine.Result) error {
	s.insights = result.Insights
	s.recommendations = result.Recommendations
	return nil
}

func (s *insightsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Insights"))
	_, _ = fmt.Fprintf(w, "--------\n")

	if len(s.insights) == 0 {
		_, _ = fmt.Fprintf(w, "  No insights fired for this dataset.\n")
	}
	for _, in := range s.insights {
		_, _ = fmt.Fprintf(w, "  [%s] %s: %s\n", ColorSeverity(in.Severity), in.Subject, in.Message)
	}

	if len(s.recommendations) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", SectionTitle("Recommendations"))
		_, _ = fmt.Fprintf(w, "---------------\n")
		for _, rec := range s.recommendations {
			_, _ = fmt.Fprintf(w, "  [%s] %s\n", ColorSeverity(rec.Severity), rec.Message)
		}
	}

	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
