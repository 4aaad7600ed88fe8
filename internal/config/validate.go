package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/davetashner/wsinfo/internal/workspace"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Kind != "" {
		if _, err := workspace.ParseKind(cfg.Kind); err != nil {
			errs = append(errs, fmt.Sprintf("kind: %v", err))
		}
	}

	if cfg.Format != "" && !slices.Contains(Formats(), cfg.Format) {
		errs = append(errs, fmt.Sprintf("format: invalid value %q (must be %s)", cfg.Format, strings.Join(Formats(), ", ")))
	}

	for i, p := range cfg.Ignore {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Sprintf("ignore[%d]: invalid pattern %q", i, p))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
