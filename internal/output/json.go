// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mktlabs/adlens/internal/engine"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope wraps the analysis result with report metadata.
type JSONEnvelope struct {
	Metadata        JSONMetadata     `json:"metadata"`
	Columns         []string         `json:"columns"`
	Rows            []JSONRow        `json:"rows"`
	Insights        []engine.Insight `json:"insights"`
	Recommendations []engine.Insight `json:"recommendations"`
	Summary         JSONSummary      `json:"summary"`
}

// JSONMetadata identifies the report run.
type JSONMetadata struct {
	ReportID    string `json:"report_id"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"`
	Creatives   int    `json:"creatives"`
	// RetentionEstimated marks the retention column as a linear-fit
	// estimate rather than a measurement.
	RetentionEstimated bool `json:"retention_estimated,omitempty"`
}

// JSONRow is one augmented record: raw values plus derived columns keyed
// by canonical column name.
type JSONRow struct {
	Name     string             `json:"name"`
	Platform string             `json:"platform,omitempty"`
	Campaign string             `json:"campaign,omitempty"`
	Values   map[string]float64 `json:"values"`
	Overall  *int               `json:"overall_score,omitempty"`
	Tier     string             `json:"tier,omitempty"`
}

// JSONSummary is the aggregate block of the envelope.
type JSONSummary struct {
	Count   int                `json:"count"`
	Means   map[string]float64 `json:"means"`
	SortKey string             `json:"sort_key"`
	Top     []string           `json:"top"`
	Bottom  []string           `json:"bottom"`
}

// JSONFormatter writes the result as a JSON document with a metadata envelope.
type JSONFormatter struct {
	// nowFunc and idFunc are injectable for testing.
	nowFunc func() time.Time
	idFunc  func() string
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string { return "json" }

// Format writes the envelope to w, pretty-printed.
func (f *JSONFormatter) Format(result *engine.Result, source string, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}
	id := uuid.NewString()
	if f.idFunc != nil {
		id = f.idFunc()
	}

	env := JSONEnvelope{
		Metadata: JSONMetadata{
			ReportID:           id,
			Source:             source,
			GeneratedAt:        now.UTC().Format(time.RFC3339),
			Creatives:          len(result.Rows),
			RetentionEstimated: result.RetentionEstimated,
		},
		Insights:        result.Insights,
		Recommendations: result.Recommendations,
	}
	if env.Insights == nil {
		env.Insights = []engine.Insight{}
	}
	if env.Recommendations == nil {
		env.Recommendations = []engine.Insight{}
	}

	for _, c := range result.Columns {
		env.Columns = append(env.Columns, string(c))
	}

	for _, row := range result.Rows {
		jr := JSONRow{
			Name:     row.Record.Name,
			Platform: row.Record.Platform,
			Campaign: row.Record.Campaign,
			Values:   make(map[string]float64),
		}
		for c, v := range row.Record.Metrics {
			jr.Values[string(c)] = v
		}
		for c, v := range row.Rates {
			jr.Values[string(c)] = v
		}
		for c, v := range row.Scores {
			jr.Values[string(c)] = v
		}
		if row.HasOverall {
			overall := row.OverallScore
			jr.Overall = &overall
			jr.Tier = string(row.Tier)
		}
		env.Rows = append(env.Rows, jr)
	}

	env.Summary = JSONSummary{
		Count:   result.Summary.Count,
		Means:   make(map[string]float64, len(result.Summary.Means)),
		SortKey: string(result.Summary.SortKey),
	}
	for c, v := range result.Summary.Means {
		env.Summary.Means[string(c)] = v
	}
	for _, r := range result.Summary.Top {
		env.Summary.Top = append(env.Summary.Top, r.Record.Name)
	}
	for _, r := range result.Summary.Bottom {
		env.Summary.Bottom = append(env.Summary.Bottom, r.Record.Name)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
