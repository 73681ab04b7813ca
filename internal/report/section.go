// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

// Package report provides a pluggable section registry for adlens report.
// Each section consumes an engine result and renders a focused view of
// creative performance.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mktlabs/adlens/internal/engine"
)

// ErrColumnsNotAvailable indicates a section's required derived columns are
// missing, typically because the export lacked the raw inputs.
var ErrColumnsNotAvailable = errors.New("columns not available")

// Section is a pluggable report section that analyzes an engine result and
// renders a focused report segment.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "overview").
	Name() string

	// Description returns a human-readable description of what this section shows.
	Description() string

	// Analyze processes the result and prepares internal state for rendering.
	// Returns ErrColumnsNotAvailable (wrapped) if required columns are missing.
	Analyze(result *engine.Result) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}
