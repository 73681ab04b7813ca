package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mktlabs/adlens/internal/config"
	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
	"github.com/mktlabs/adlens/internal/output"
	"github.com/mktlabs/adlens/internal/report"
)

// AnalyzeInput is the input schema for the adlens analyze MCP tool.
type AnalyzeInput struct {
	Path       string `json:"path" jsonschema:"Path to the ad platform CSV export"`
	Format     string `json:"format,omitempty" jsonschema:"Output format: csv, json, summary (default: json)"`
	Policy     string `json:"policy,omitempty" jsonschema:"Scoring policy: threshold or benchmark"`
	Benchmarks string `json:"benchmarks,omitempty" jsonschema:"Path to a TOML benchmark preset file"`
	Sort       string `json:"sort,omitempty" jsonschema:"Column to rank creatives by (default: overall_score)"`
	Top        int    `json:"top,omitempty" jsonschema:"Number of top and bottom creatives to highlight (default: 3)"`
}

// ReportInput is the input schema for the adlens report MCP tool.
type ReportInput struct {
	Path     string `json:"path" jsonschema:"Path to the ad platform CSV export"`
	Sections string `json:"sections,omitempty" jsonschema:"Comma-separated list of report sections to include (default: all)"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json or text (default: json)"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all adlens tools to the MCP server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze an ad platform CSV export: derive hook/hold/CTR/retention rates, benchmark scores, performance tiers, and an aggregate summary. Returns the augmented table or report.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleAnalyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Generate a creative performance report with overview averages, per-creative scores, insights, and top/bottom leaders.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleReport)
}

func handleAnalyze(_ context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	absPath, err := ResolveFile(input.Path)
	if err != nil {
		return nil, nil, err
	}

	// Default to json for MCP consumers.
	format := "json"
	if input.Format != "" {
		format = input.Format
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return nil, nil, err
	}

	result, err := analyzeFile(absPath, config.Options{
		Policy:         input.Policy,
		SortKey:        input.Sort,
		TopN:           input.Top,
		BenchmarksFile: input.Benchmarks,
	})
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := formatter.Format(result, absPath, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

func handleReport(_ context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	absPath, err := ResolveFile(input.Path)
	if err != nil {
		return nil, nil, err
	}

	result, err := analyzeFile(absPath, config.Options{})
	if err != nil {
		return nil, nil, err
	}

	var sections []string
	if input.Sections != "" {
		sections = splitAndTrim(input.Sections)
	}

	format := "json"
	if input.Format != "" {
		format = input.Format
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		if err := report.RenderJSON(result, absPath, sections, &buf); err != nil {
			return nil, nil, fmt.Errorf("rendering failed: %w", err)
		}
	case "text":
		if err := report.Render(result, sections, &buf); err != nil {
			return nil, nil, fmt.Errorf("rendering failed: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported format %q (supported: json, text)", format)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

// analyzeFile loads the CSV at absPath and runs the engine with the config
// file next to the export, overlaid with the given options.
func analyzeFile(absPath string, opts config.Options) (*engine.Result, error) {
	fileCfg, err := config.Load(filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return nil, err
	}

	cfg, err := config.Build(fileCfg, opts)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.LoadCSVFile(absPath)
	if err != nil {
		return nil, err
	}

	result, err := engine.Analyze(ds, cfg)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return result, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
