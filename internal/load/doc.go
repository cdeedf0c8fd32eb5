// Package load wraps one source invocation, measuring duration and capturing
// success or failure for both stages of a possibly two-stage source.
//
// Start runs the first stage synchronously so elapsed-time measurement is not
// polluted by scheduler overhead, and returns a Pending getter that settles
// the final Outcome. Errors and panics in either stage become error outcomes;
// they never abort sibling sources.
package load
