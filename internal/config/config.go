// Package config handles .adlens.yaml configuration files and TOML
// benchmark presets, and turns them into an engine configuration.
package config

import (
	"github.com/mktlabs/adlens/internal/engine"
)

// FileName is the expected config file name in the working directory.
const FileName = ".adlens.yaml"

// Config represents the contents of a .adlens.yaml file. All fields are
// optional; zero values fall through to the engine defaults.
type Config struct {
	OutputFormat string `yaml:"output_format,omitempty"`
	Policy       string `yaml:"policy,omitempty"`
	SortKey      string `yaml:"sort_key,omitempty"`
	TopN         int    `yaml:"top_n,omitempty"`

	// BenchmarksFile points at a TOML benchmark preset relative to the
	// config file's directory.
	BenchmarksFile string `yaml:"benchmarks_file,omitempty"`

	Benchmarks *engine.Benchmarks          `yaml:"benchmarks,omitempty"`
	Bands      *BandsConfig                `yaml:"bands,omitempty"`
	Insight    *engine.InsightThresholds   `yaml:"insight,omitempty"`
	Recommend  *engine.RecommendThresholds `yaml:"recommend,omitempty"`
}

// BandsConfig mirrors engine.Bands with optional per-metric pairs so a
// file can override a single band without restating the rest.
type BandsConfig struct {
	Hook         *engine.Band `yaml:"hook,omitempty" toml:"hook"`
	ThumbStop    *engine.Band `yaml:"thumbstop,omitempty" toml:"thumbstop"`
	Hold         *engine.Band `yaml:"hold,omitempty" toml:"hold"`
	CTR          *engine.Band `yaml:"ctr,omitempty" toml:"ctr"`
	Retention15s *engine.Band `yaml:"retention_15s,omitempty" toml:"retention_15s"`
}

// apply overlays the non-nil bands onto dst.
func (b *BandsConfig) apply(dst *engine.Bands) {
	if b == nil {
		return
	}
	if b.Hook != nil {
		dst.Hook = *b.Hook
	}
	if b.ThumbStop != nil {
		dst.ThumbStop = *b.ThumbStop
	}
	if b.Hold != nil {
		dst.Hold = *b.Hold
	}
	if b.CTR != nil {
		dst.CTR = *b.CTR
	}
	if b.Retention15s != nil {
		dst.Retention15s = *b.Retention15s
	}
}
