// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// headerAliases maps lowercased export headers to canonical columns.
// Covers the Facebook/Meta, Google, and TikTok ads export vocabularies.
var headerAliases = map[string]Column{
	"ad name":       ColName,
	"creative":      ColName,
	"creative name": ColName,
	"name":          ColName,

	"impressions": ColImpressions,

	"three-second video views": ColThreeSecondViews,
	"3-second video plays":     ColThreeSecondViews,
	"3-second video views":     ColThreeSecondViews,
	"three_second_views":       ColThreeSecondViews,

	"thumb stops": ColThumbStops,
	"thumb_stops": ColThumbStops,

	"video plays at 25%": ColVideoPlays25,
	"video_plays_25":     ColVideoPlays25,
	"video plays at 50%": ColVideoPlays50,
	"video_plays_50":     ColVideoPlays50,
	"video plays at 75%": ColVideoPlays75,
	"video_plays_75":     ColVideoPlays75,
	"video plays at 95%": ColVideoPlays95,
	"video_plays_95":     ColVideoPlays95,

	"15-second video views": ColFifteenSecondViews,
	"fifteen_second_views":  ColFifteenSecondViews,

	"thruplay actions": ColThruplayActions,
	"thruplays":        ColThruplayActions,
	"thruplay_actions": ColThruplayActions,

	"link clicks": ColLinkClicks,
	"clicks":      ColLinkClicks,
	"link_clicks": ColLinkClicks,

	"video average play time": ColAvgWatchTime,
	"average watch time":      ColAvgWatchTime,
	"avg_watch_time_s":        ColAvgWatchTime,

	"cost (eur)":        ColCost,
	"cost (usd)":        ColCost,
	"amount spent (eur)": ColCost,
	"amount spent (usd)": ColCost,
	"amount spent":      ColCost,
	"spend":             ColCost,
	"cost":              ColCost,

	"roas":          ColROAS,
	"purchase roas": ColROAS,

	"conversions": ColConversions,
	"purchases":   ColConversions,

	"revenue":                ColRevenue,
	"purchase value":         ColRevenue,
	"conversion value":       ColRevenue,
	"total conversion value": ColRevenue,

	"platform": ColPlatform,
	"campaign": ColCampaign,
	"campaign name": ColCampaign,
}

// CanonicalColumn resolves an export header to its canonical column.
// The second return is false for headers adlens does not recognize.
func CanonicalColumn(header string) (Column, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	col, ok := headerAliases[key]
	return col, ok
}

// LoadCSV reads an ad-platform CSV export from r. The header row decides the
// dataset schema once; unrecognized columns are ignored. Blank numeric cells
// are treated as 0; otherwise cells must parse as numbers.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	// Map CSV field index -> canonical column. Later duplicates of the same
	// canonical column are ignored; the first occurrence wins.
	schema := make(Schema)
	byIndex := make(map[int]Column, len(header))
	for i, h := range header {
		col, ok := CanonicalColumn(h)
		if !ok || schema[col] {
			continue
		}
		schema[col] = true
		byIndex[i] = col
	}

	if len(schema) == 0 {
		return nil, fmt.Errorf("csv: no recognized columns in header %v", header)
	}

	ds := &Dataset{Schema: schema}
	line := 1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		rec := Record{Metrics: make(map[Column]float64)}
		for i, col := range byIndex {
			if i >= len(fields) {
				continue
			}
			raw := strings.TrimSpace(fields[i])
			if IsText(col) {
				switch col {
				case ColName:
					rec.Name = raw
				case ColPlatform:
					rec.Platform = raw
				case ColCampaign:
					rec.Campaign = raw
				}
				continue
			}
			v, err := parseNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("csv: line %d, column %q: %w", line, col, err)
			}
			rec.Metrics[col] = v
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// LoadCSVFile opens and parses the CSV export at path.
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided export path
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	ds, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// parseNumber parses an export cell: blank means 0, thousands separators
// and stray percent/currency signs are stripped.
func parseNumber(s string) (float64, error) {
	if s == "" || s == "-" || strings.EqualFold(s, "n/a") {
		return 0, nil
	}
	clean := strings.NewReplacer(",", "", "%", "", "$", "", "€", "", "x", "").Replace(s)
	clean = strings.TrimSpace(clean)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
