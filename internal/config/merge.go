package config

import (
	"fmt"

	"github.com/mktlabs/adlens/internal/dataset"
	"github.com/mktlabs/adlens/internal/engine"
)

// Options carries CLI-provided overrides. CLI values take precedence over
// the config file; zero values fall through.
type Options struct {
	Policy         string
	SortKey        string
	TopN           int
	BenchmarksFile string
	EstimateSeed   *int64
}

// Build assembles the engine configuration: engine defaults, overlaid with
// the file config, then a benchmark preset (if any), then CLI options.
// The result is validated before returning.
func Build(fileCfg *Config, opts Options) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	if fileCfg != nil {
		if fileCfg.Policy != "" {
			cfg.Policy = engine.Policy(fileCfg.Policy)
		}
		if fileCfg.SortKey != "" {
			cfg.SortKey = dataset.Column(fileCfg.SortKey)
		}
		if fileCfg.TopN > 0 {
			cfg.TopN = fileCfg.TopN
		}
		if fileCfg.Benchmarks != nil {
			overlayBenchmarks(&cfg.Benchmarks, *fileCfg.Benchmarks)
		}
		fileCfg.Bands.apply(&cfg.Bands)
		if fileCfg.Insight != nil {
			cfg.Insight = *fileCfg.Insight
		}
		if fileCfg.Recommend != nil {
			cfg.Recommend = *fileCfg.Recommend
		}
	}

	presetPath := ""
	if fileCfg != nil {
		presetPath = fileCfg.BenchmarksFile
	}
	if opts.BenchmarksFile != "" {
		presetPath = opts.BenchmarksFile
	}
	if presetPath != "" {
		preset, err := LoadPreset(presetPath)
		if err != nil {
			return engine.Config{}, fmt.Errorf("load benchmarks: %w", err)
		}
		preset.apply(&cfg)
	}

	if opts.Policy != "" {
		cfg.Policy = engine.Policy(opts.Policy)
	}
	if opts.SortKey != "" {
		cfg.SortKey = dataset.Column(opts.SortKey)
	}
	if opts.TopN > 0 {
		cfg.TopN = opts.TopN
	}
	cfg.EstimateSeed = opts.EstimateSeed

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}
