// Package config loads, normalizes, and validates the TOML configuration for
// the fingerprint CLI and pipeline.
//
// Defaults live in defaults.go, path expansion and trimming in normalize.go,
// and usability checks in validate.go. Load layers a config file over the
// defaults so a missing file still yields a working setup.
package config
