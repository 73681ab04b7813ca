package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktlabs/adlens/internal/output"
)

func TestAnalyze_SummaryDefault(t *testing.T) {
	path := writeExport(t)

	out, err := execute(t, "analyze", path)
	require.NoError(t, err)

	assert.Contains(t, out, "CREATIVE PERFORMANCE REPORT")
	assert.Contains(t, out, "Total creatives: 3")
	assert.Contains(t, out, "TOP PERFORMERS")
}

func TestAnalyze_JSONFormat(t *testing.T) {
	path := writeExport(t)

	out, err := execute(t, "analyze", path, "--format", "json")
	require.NoError(t, err)

	var env output.JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, 3, env.Metadata.Creatives)
	assert.Equal(t, path, env.Metadata.Source)
}

func TestAnalyze_CSVToOutputFile(t *testing.T) {
	path := writeExport(t)
	outFile := filepath.Join(t.TempDir(), "scored.csv")

	_, err := execute(t, "analyze", path, "-f", "csv", "-o", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4) // header + 3 creatives
	assert.Contains(t, lines[0], "hook_rate_pct")
	assert.Contains(t, lines[0], "tier")
}

func TestAnalyze_MultipleExports(t *testing.T) {
	a := writeExport(t)
	b := writeExport(t)

	out, err := execute(t, "analyze", a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "CREATIVE PERFORMANCE REPORT"))
}

func TestAnalyze_MinHookFilter(t *testing.T) {
	path := writeExport(t)

	// Slow Burn's 4% hook rate falls below the floor.
	out, err := execute(t, "analyze", path, "--min-hook", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Total creatives: 2")
	assert.NotContains(t, out, "Slow Burn")
}

func TestAnalyze_MinROASFilter(t *testing.T) {
	path := writeExport(t)

	out, err := execute(t, "analyze", path, "--min-roas", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Total creatives: 2")
}

func TestAnalyze_FilterRemovesAllRows(t *testing.T) {
	path := writeExport(t)

	_, err := execute(t, "analyze", path, "--min-hook", "99")
	require.Error(t, err)

	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitAnalysisFailure, ece.code)
}

func TestAnalyze_ExitCodes(t *testing.T) {
	path := writeExport(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown format", []string{"analyze", path, "--format", "xml"}, ExitInvalidArgs},
		{"bad policy", []string{"analyze", path, "--policy", "vibes"}, ExitInvalidArgs},
		{"output with multiple exports", []string{"analyze", path, path, "-o", "out.csv"}, ExitInvalidArgs},
		{"missing file", []string{"analyze", filepath.Join(t.TempDir(), "no.csv")}, ExitAnalysisFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)

			var ece *exitCodeError
			require.True(t, errors.As(err, &ece), "expected exitCodeError, got %T", err)
			assert.Equal(t, tt.code, ece.code)
		})
	}
}

func TestAnalyze_UnrecognizedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0o644))

	_, err := execute(t, "analyze", path)
	require.Error(t, err)

	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitAnalysisFailure, ece.code)
}

func TestAnalyze_BenchmarkPreset(t *testing.T) {
	path := writeExport(t)
	preset := filepath.Join(t.TempDir(), "meta.toml")
	require.NoError(t, os.WriteFile(preset, []byte("[benchmarks]\nhook = 9.0\n"), 0o644))

	out, err := execute(t, "analyze", path, "--policy", "benchmark", "--benchmarks", preset, "--format", "json")
	require.NoError(t, err)

	var env output.JSONEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	// Hero Video: 9% hook rate against the 9.0 benchmark is a ratio score of 50.
	assert.InDelta(t, 50.0, env.Rows[0].Values["hook_score"], 1e-9)
}

func TestAnalyze_SortAndTop(t *testing.T) {
	path := writeExport(t)

	out, err := execute(t, "analyze", path, "--sort", "hook_rate_pct", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "TOP PERFORMERS (by hook_rate_pct)")
	assert.Contains(t, out, "1. Hero Video")
	assert.NotContains(t, out, "2. ")
}
