// Package output defines the Formatter interface for writing analysis
// results in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mktlabs/adlens/internal/engine"
)

// Formatter writes an engine result to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "csv", "json", "summary").
	Name() string

	// Format writes the result to w. Source names the input the result was
	// computed from (usually the CSV path) for formats that carry metadata.
	Format(result *engine.Result, source string, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// formatNames returns a comma-separated sorted list of registered format names.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	result := ""
	for i, n := range names {
		if i > 0 {
			result += ", "
		}
		result += n
	}
	return result
}
