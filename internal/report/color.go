// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/mktlabs/adlens/internal/engine"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// SectionTitle renders a bold section heading.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorTier colors performance tier labels.
func ColorTier(val string) string {
	switch engine.Tier(val) {
	case engine.TierExcellent:
		return colorGreen.Sprint(val)
	case engine.TierGood:
		return colorCyan.Sprint(val)
	case engine.TierAverage:
		return colorYellow.Sprint(val)
	case engine.TierPoor:
		return colorRed.Sprint(val)
	default:
		return val
	}
}

// ColorSeverity colors insight severity labels.
func ColorSeverity(sev engine.Severity) string {
	label := string(sev)
	switch sev {
	case engine.SeverityCritical:
		return colorRed.Sprint("CRITICAL")
	case engine.SeverityWarning:
		return colorYellow.Sprint("WARNING")
	case engine.SeveritySuccess:
		return colorGreen.Sprint("SUCCESS")
	case engine.SeverityInfo:
		return colorCyan.Sprint("INFO")
	default:
		return label
	}
}

// colorScore colors 0-100 score cells on the tier boundaries.
func colorScore(val string) string {
	var score float64
	if _, err := fmt.Sscanf(val, "%f", &score); err != nil {
		return val
	}
	switch {
	case score >= 80:
		return colorGreen.Sprint(val)
	case score < 40:
		return colorRed.Sprint(val)
	default:
		return val
	}
}
