package probe

import "context"

// Source is a single named measurement of the execution environment.
//
// Collect runs the first stage of the measurement and must not panic across
// the interface on purpose; panics are still recovered by the loader and
// recorded as execution errors. Collect receives the shared Environment by
// reference and may cache intermediates in it. A source is invoked at most
// once per identification run.
type Source interface {
	Name() string
	Collect(ctx context.Context, env *Environment) Reading
}

// Continuation resolves the second stage of a deferred reading.
type Continuation func(ctx context.Context) (any, error)

type readingKind int

const (
	readingValue readingKind = iota
	readingError
	readingDeferred
)

// Reading is the tagged result of a source's first stage. Exactly one variant
// is populated; use the constructors below rather than building it by hand.
type Reading struct {
	kind   readingKind
	value  any
	err    error
	resume Continuation
}

// Immediate wraps a final value produced synchronously by the first stage.
func Immediate(value any) Reading {
	return Reading{kind: readingValue, value: value}
}

// Fail wraps a first-stage failure.
func Fail(err error) Reading {
	return Reading{kind: readingError, err: err}
}

// Deferred wraps a two-stage measurement: the source has been prepared and
// resume will produce the final value when invoked later.
func Deferred(resume Continuation) Reading {
	if resume == nil {
		return Fail(Wrap(ErrExecution, "", "nil continuation", nil))
	}
	return Reading{kind: readingDeferred, resume: resume}
}

// Resume returns the continuation when the reading is deferred.
func (r Reading) Resume() (Continuation, bool) {
	if r.kind == readingDeferred {
		return r.resume, true
	}
	return nil, false
}

// Final returns the immediate value or error of a non-deferred reading.
func (r Reading) Final() (any, error) {
	return r.value, r.err
}
