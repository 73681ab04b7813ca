package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mktlabs/adlens/internal/engine"
)

// ReportJSON is the top-level JSON structure for report --format json output.
type ReportJSON struct {
	Source    string        `json:"source"`
	Generated string        `json:"generated"`
	Creatives int           `json:"creatives"`
	Sections  []SectionJSON `json:"sections,omitempty"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "skipped"
	Content     string `json:"content,omitempty"` // rendered text
}

// Render writes the selected sections as a plain-text report. Sections
// whose required columns are missing are skipped with a note.
func Render(result *engine.Result, sections []string, w io.Writer) error {
	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if sec == nil {
			continue
		}
		if err := sec.Analyze(result); err != nil {
			if errors.Is(err, ErrColumnsNotAvailable) {
				_, _ = fmt.Fprintf(w, "%s\n  skipped: required columns not in this export\n\n", SectionTitle(sec.Name()))
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

// RenderJSON writes the report as machine-readable JSON.
func RenderJSON(result *engine.Result, source string, sections []string, w io.Writer) error {
	out := ReportJSON{
		Source:    source,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Creatives: result.Summary.Count,
	}

	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if sec == nil {
			continue
		}

		sj := SectionJSON{
			Name:        sec.Name(),
			Description: sec.Description(),
		}

		if err := sec.Analyze(result); err != nil {
			if errors.Is(err, ErrColumnsNotAvailable) {
				sj.Status = "skipped"
				out.Sections = append(out.Sections, sj)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}

		sj.Status = "ok"
		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Content = buf.String()
		out.Sections = append(out.Sections, sj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which sections to run without printing warnings.
// If filter is empty, all registered sections are used.
func ResolveSections(filter []string) []string {
	if len(filter) == 0 {
		return List()
	}

	available := make(map[string]bool)
	for _, name := range List() {
		available[name] = true
	}

	var names []string
	for _, name := range filter {
		if available[name] {
			names = append(names, name)
		}
	}
	return names
}
