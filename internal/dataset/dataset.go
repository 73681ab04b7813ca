// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

// Package dataset defines the tabular model for creative performance data:
// records, the dataset schema, and the canonical column vocabulary shared
// by the engine and the export layer.
package dataset

// Column identifies a canonical raw or derived column.
type Column string

// Raw columns, as canonicalized from ad-platform CSV exports.
const (
	ColName               Column = "name"
	ColImpressions        Column = "impressions"
	ColThreeSecondViews   Column = "three_second_views"
	ColThumbStops         Column = "thumb_stops"
	ColVideoPlays25       Column = "video_plays_25"
	ColVideoPlays50       Column = "video_plays_50"
	ColVideoPlays75       Column = "video_plays_75"
	ColVideoPlays95       Column = "video_plays_95"
	ColFifteenSecondViews Column = "fifteen_second_views"
	ColThruplayActions    Column = "thruplay_actions"
	ColLinkClicks         Column = "link_clicks"
	ColAvgWatchTime       Column = "avg_watch_time_s"
	ColCost               Column = "cost"
	ColROAS               Column = "roas"
	ColConversions        Column = "conversions"
	ColRevenue            Column = "revenue"
	ColPlatform           Column = "platform"
	ColCampaign           Column = "campaign"
)

// Derived rate columns. Values are percentages rounded to two decimals.
const (
	ColHookRate       Column = "hook_rate_pct"
	ColThumbStopRate  Column = "thumbstop_rate_pct"
	ColHoldRate       Column = "hold_rate_pct"
	ColCTR            Column = "ctr_pct"
	ColRetention15s   Column = "retention_15s_pct"
	ColConversionRate Column = "conversion_rate_pct"
)

// Derived score columns (0-100) and the composite.
const (
	ColHookScore      Column = "hook_score"
	ColThumbStopScore Column = "thumbstop_score"
	ColHoldScore      Column = "hold_score"
	ColCTRScore       Column = "ctr_score"
	ColRetentionScore Column = "retention_score"
	ColOverallScore   Column = "overall_score"
	ColTier           Column = "tier"
)

// rawOrder is the canonical ordering of raw columns in exports.
var rawOrder = []Column{
	ColName,
	ColPlatform,
	ColCampaign,
	ColImpressions,
	ColThreeSecondViews,
	ColThumbStops,
	ColVideoPlays25,
	ColVideoPlays50,
	ColVideoPlays75,
	ColVideoPlays95,
	ColFifteenSecondViews,
	ColThruplayActions,
	ColLinkClicks,
	ColAvgWatchTime,
	ColCost,
	ColConversions,
	ColRevenue,
	ColROAS,
}

// RawOrder returns the canonical export ordering of raw columns.
func RawOrder() []Column {
	out := make([]Column, len(rawOrder))
	copy(out, rawOrder)
	return out
}

// textColumns are raw columns holding strings rather than numbers.
var textColumns = map[Column]bool{
	ColName:     true,
	ColPlatform: true,
	ColCampaign: true,
}

// IsText reports whether c holds string values.
func IsText(c Column) bool { return textColumns[c] }

// Record is one row of the input dataset. Numeric values live in Metrics,
// keyed by canonical column; text identity fields are promoted to struct
// fields. Names are not guaranteed unique across a dataset.
type Record struct {
	Name     string
	Platform string
	Campaign string
	Metrics  map[Column]float64
}

// Metric returns the raw numeric value for c, or 0 when absent.
// Presence decisions belong to the Schema, not to individual rows.
func (r Record) Metric(c Column) float64 {
	return r.Metrics[c]
}

// Text returns the string value for a text column.
func (r Record) Text(c Column) string {
	switch c {
	case ColName:
		return r.Name
	case ColPlatform:
		return r.Platform
	case ColCampaign:
		return r.Campaign
	}
	return ""
}

// Schema is the capability set of a dataset: which canonical columns the
// source provided. It is decided once from the header; rows never vary in
// column presence.
type Schema map[Column]bool

// Has reports whether every given column is present.
func (s Schema) Has(cols ...Column) bool {
	for _, c := range cols {
		if !s[c] {
			return false
		}
	}
	return true
}

// Columns returns the present raw columns in canonical export order.
func (s Schema) Columns() []Column {
	var out []Column
	for _, c := range rawOrder {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Dataset is an ordered sequence of records plus the schema they share.
type Dataset struct {
	Records []Record
	Schema  Schema
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }
