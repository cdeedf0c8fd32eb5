// Package probes holds the builtin measurement sources registered with the
// identification engine.
//
// Registration order in Builtin is fixed and load-bearing for the component
// set's consumer-facing order (the identifier itself is order-independent).
// Each source follows the probe.Source contract: failures are reported
// through readings, never panics, and anything cached for reuse goes through
// the shared Environment.
package probes
