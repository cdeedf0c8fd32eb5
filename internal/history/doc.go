// Package history persists completed identification runs to a local SQLite
// database for diagnostics and drift tracking.
//
// The core pipeline stays stateless; recording a run is a caller-side
// concern. A file lock next to the database guards against concurrent CLI
// invocations clobbering each other.
package history
