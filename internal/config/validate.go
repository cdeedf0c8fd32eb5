package config

import (
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", c.Logging.Level)
	}
	if c.Pipeline.SliceBudgetMillis > 1000 {
		return fmt.Errorf("pipeline.slice_budget_ms %d would starve the host; keep it at or below 1000", c.Pipeline.SliceBudgetMillis)
	}
	return nil
}
