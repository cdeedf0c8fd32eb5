package probe

import "time"

// Outcome is the settled result of running one source: exactly one of Value
// or Err is meaningful, plus the cumulative wall-clock duration across both
// stages. Outcomes are immutable once produced.
type Outcome struct {
	Value    any
	Err      error
	Duration time.Duration
}

// Failed reports whether the source ended in an error.
func (o Outcome) Failed() bool { return o.Err != nil }
