// Package logging assembles structured slog loggers and formatting helpers
// used across the fingerprint pipeline.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes typed attribute constructors plus standardized field keys so every
// component emits data with the same shape. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
