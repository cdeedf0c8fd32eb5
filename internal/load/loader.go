package load

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// Pending resolves the final Outcome of a source whose first stage already
// ran. Invoking it more than once is safe: the underlying continuation runs
// at most once and the settled Outcome is returned thereafter.
type Pending func(ctx context.Context) probe.Outcome

// Start invokes the first stage of src against env and returns a Pending
// getter. It returns synchronously; for immediate readings the getter is a
// plain accessor, for deferred readings the getter runs the continuation and
// accumulates the stage durations.
func Start(ctx context.Context, src probe.Source, env *probe.Environment) Pending {
	t0 := time.Now()
	reading := collect(ctx, src, env)
	stage1 := time.Since(t0)

	resume, ok := reading.Resume()
	if !ok {
		value, err := reading.Final()
		settled := outcome(src.Name(), value, err, stage1)
		return func(context.Context) probe.Outcome { return settled }
	}

	var once sync.Once
	var settled probe.Outcome
	return func(ctx context.Context) probe.Outcome {
		once.Do(func() {
			t1 := time.Now()
			value, err := runContinuation(ctx, src.Name(), resume)
			settled = outcome(src.Name(), value, err, stage1+time.Since(t1))
		})
		return settled
	}
}

func collect(ctx context.Context, src probe.Source, env *probe.Environment) (reading probe.Reading) {
	defer func() {
		if recovered := recover(); recovered != nil {
			reading = probe.Fail(probe.Wrap(probe.ErrExecution, src.Name(),
				fmt.Sprintf("panic: %v", recovered), nil))
		}
	}()
	return src.Collect(ctx, env)
}

func runContinuation(ctx context.Context, name string, resume probe.Continuation) (value any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value = nil
			err = probe.Wrap(probe.ErrExecution, name,
				fmt.Sprintf("continuation panic: %v", recovered), nil)
		}
	}()
	return resume(ctx)
}

func outcome(name string, value any, err error, elapsed time.Duration) probe.Outcome {
	if err != nil {
		if !errors.Is(err, probe.ErrExecution) && !errors.Is(err, probe.ErrTimeout) {
			err = probe.Wrap(probe.ErrExecution, name, "", err)
		}
		return probe.Outcome{Err: err, Duration: elapsed}
	}
	return probe.Outcome{Value: value, Duration: elapsed}
}
