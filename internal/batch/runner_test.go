package batch

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

type countingYielder struct {
	yields int
}

func (y *countingYielder) Yield(context.Context) error {
	y.yields++
	return nil
}

func TestRunPreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	steps := make([]func(context.Context) int, 64)
	for i := range steps {
		i := i
		delay := time.Duration(rng.Intn(2)) * time.Millisecond
		steps[i] = func(context.Context) int {
			time.Sleep(delay)
			return i
		}
	}

	runner := NewRunner(Options{SliceBudget: time.Millisecond})
	out, err := Run(context.Background(), runner, steps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, got := range out {
		if got != i {
			t.Fatalf("position %d holds %d; output order must equal input order", i, got)
		}
	}
}

func TestRunYieldsWhenBudgetExceeded(t *testing.T) {
	clock := time.Unix(0, 0)
	now := func() time.Time {
		clock = clock.Add(10 * time.Millisecond)
		return clock
	}

	yielder := &countingYielder{}
	runner := NewRunner(Options{SliceBudget: 16 * time.Millisecond, Yielder: yielder, Now: now})

	steps := make([]func(context.Context) struct{}, 6)
	for i := range steps {
		steps[i] = func(context.Context) struct{} { return struct{}{} }
	}

	if _, err := Run(context.Background(), runner, steps); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The fake clock advances 10ms per observation, so every second item
	// crosses the 16ms budget.
	if yielder.yields != 3 {
		t.Fatalf("yields = %d, want 3", yielder.yields)
	}
}

func TestRunDoesNotYieldUnderBudget(t *testing.T) {
	yielder := &countingYielder{}
	runner := NewRunner(Options{SliceBudget: time.Hour, Yielder: yielder})

	steps := []func(context.Context) int{
		func(context.Context) int { return 1 },
		func(context.Context) int { return 2 },
	}
	if _, err := Run(context.Background(), runner, steps); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if yielder.yields != 0 {
		t.Fatalf("yields = %d, want 0", yielder.yields)
	}
}

func TestRunCancellationIsSchedulingError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(Options{SliceBudget: time.Nanosecond})
	steps := []func(context.Context) int{
		func(context.Context) int { time.Sleep(time.Millisecond); return 1 },
		func(context.Context) int { return 2 },
	}

	_, err := Run(ctx, runner, steps)
	if !errors.Is(err, ErrScheduling) {
		t.Fatalf("expected ErrScheduling, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cause should be preserved, got %v", err)
	}
}

func TestRunSkipsNilSteps(t *testing.T) {
	runner := NewRunner(Options{})
	out, err := Run(context.Background(), runner, []func(context.Context) int{nil, func(context.Context) int { return 7 }})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out[0] != 0 || out[1] != 7 {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestNilRunnerUsesDefaults(t *testing.T) {
	out, err := Run(context.Background(), nil, []func(context.Context) string{
		func(context.Context) string { return "ok" },
	})
	if err != nil || out[0] != "ok" {
		t.Fatalf("Run = (%v, %v)", out, err)
	}
}
