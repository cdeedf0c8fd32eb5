// Package batch runs many independent steps sequentially while yielding to
// the Go scheduler often enough that the host's own concurrent work is never
// starved.
//
// The Runner tracks wall-clock time since its last yield point and suspends
// whenever the configured slice budget is exceeded. Output order always
// equals input order; per-item error policy is not the runner's concern.
// Only a host-level failure (context cancellation, a failing custom Yielder)
// aborts a pass, surfaced as ErrScheduling.
package batch
