package config

import (
	"fmt"
	"strings"

	"github.com/mktlabs/adlens/internal/engine"
	"github.com/mktlabs/adlens/internal/output"
)

// Validate checks all fields in the file config and returns all errors at
// once. Engine-level threshold validation happens later, in Build, once
// overlays are resolved.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Policy != "" {
		switch engine.Policy(cfg.Policy) {
		case engine.PolicyThreshold, engine.PolicyBenchmark:
			// valid
		default:
			errs = append(errs, fmt.Sprintf("policy: invalid value %q (must be threshold or benchmark)", cfg.Policy))
		}
	}

	if cfg.TopN < 0 {
		errs = append(errs, fmt.Sprintf("top_n: must be non-negative, got %d", cfg.TopN))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
