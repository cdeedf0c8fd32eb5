package config

const (
	defaultSliceBudgetMillis     = 16
	defaultStorageTimeoutSeconds = 5
	defaultHistoryPath           = "~/.local/share/fingerprint/history.db"
	defaultHistoryKeep           = 200
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			SliceBudgetMillis: defaultSliceBudgetMillis,
		},
		Probes: Probes{
			StorageTimeoutSeconds: defaultStorageTimeoutSeconds,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
