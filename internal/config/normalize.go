package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if c.Pipeline.SliceBudgetMillis <= 0 {
		c.Pipeline.SliceBudgetMillis = defaultSliceBudgetMillis
	}
	if c.Probes.StorageTimeoutSeconds <= 0 {
		c.Probes.StorageTimeoutSeconds = defaultStorageTimeoutSeconds
	}

	exclude := make([]string, 0, len(c.Probes.Exclude))
	for _, name := range c.Probes.Exclude {
		if name = strings.TrimSpace(name); name != "" {
			exclude = append(exclude, name)
		}
	}
	c.Probes.Exclude = exclude

	if c.History.Keep <= 0 {
		c.History.Keep = defaultHistoryKeep
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
