package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mktlabs/adlens/internal/engine"
)

// Preset is a TOML benchmark preset file: named reference values for one
// ad platform, optionally with threshold-tier bands.
//
//	name = "tiktok"
//	[benchmarks]
//	hook = 10.0
//	ctr = 1.2
//	[bands.hook]
//	good = 9.0
//	medium = 4.0
type Preset struct {
	Name       string             `toml:"name"`
	Benchmarks *engine.Benchmarks `toml:"benchmarks"`
	Bands      *BandsConfig       `toml:"bands"`
}

// LoadPreset reads a TOML benchmark preset from path.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided preset path
	if err != nil {
		return nil, err
	}

	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return &p, nil
}

// apply overlays the preset's values onto an engine config. Zero-valued
// benchmark fields keep the existing value so a preset can be partial.
func (p *Preset) apply(cfg *engine.Config) {
	if p.Benchmarks != nil {
		overlayBenchmarks(&cfg.Benchmarks, *p.Benchmarks)
	}
	p.Bands.apply(&cfg.Bands)
}

func overlayBenchmarks(dst *engine.Benchmarks, src engine.Benchmarks) {
	if src.Hook > 0 {
		dst.Hook = src.Hook
	}
	if src.ThumbStop > 0 {
		dst.ThumbStop = src.ThumbStop
	}
	if src.Hold > 0 {
		dst.Hold = src.Hold
	}
	if src.CTR > 0 {
		dst.CTR = src.CTR
	}
	if src.Retention15s > 0 {
		dst.Retention15s = src.Retention15s
	}
	if src.AvgWatchTime > 0 {
		dst.AvgWatchTime = src.AvgWatchTime
	}
}
