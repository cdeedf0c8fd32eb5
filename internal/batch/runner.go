package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/zhyswan/fingerprintjs/internal/logging"
)

// ErrScheduling marks host-level failures unrelated to any single item.
// Unlike per-item errors, it is fatal to the whole pass.
var ErrScheduling = errors.New("scheduling error")

// DefaultSliceBudget bounds the synchronous work done between yield points.
const DefaultSliceBudget = 16 * time.Millisecond

// Yielder suspends the current pass so pending host work can run. Yield
// returns an error only when the host itself is going away.
type Yielder interface {
	Yield(ctx context.Context) error
}

type goschedYielder struct{}

func (goschedYielder) Yield(ctx context.Context) error {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	runtime.Gosched()
	return nil
}

// DefaultYielder yields through the runtime scheduler, the lightest
// suspension primitive available, after checking for cancellation.
func DefaultYielder() Yielder { return goschedYielder{} }

// Options configures a Runner. Zero values select defaults.
type Options struct {
	SliceBudget time.Duration
	Yielder     Yielder
	Logger      *slog.Logger
	Now         func() time.Time
}

// Runner executes batches under one yielding discipline.
type Runner struct {
	budget  time.Duration
	yielder Yielder
	logger  *slog.Logger
	now     func() time.Time
}

// NewRunner constructs a Runner from opts.
func NewRunner(opts Options) *Runner {
	budget := opts.SliceBudget
	if budget <= 0 {
		budget = DefaultSliceBudget
	}
	yielder := opts.Yielder
	if yielder == nil {
		yielder = DefaultYielder()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		budget:  budget,
		yielder: yielder,
		logger:  logging.NewComponentLogger(opts.Logger, "batch"),
		now:     now,
	}
}

// Run processes steps in order, yielding whenever the elapsed time since the
// last yield point exceeds the runner's slice budget. The returned slice is
// indexed by original position. A yield failure aborts the pass and is
// reported as ErrScheduling; item-level failures must already be folded into
// T by the caller.
func Run[T any](ctx context.Context, r *Runner, steps []func(context.Context) T) ([]T, error) {
	if r == nil {
		r = NewRunner(Options{})
	}
	out := make([]T, len(steps))
	yields := 0
	start := r.now()
	sliceStart := start
	for i, step := range steps {
		if step == nil {
			continue
		}
		out[i] = step(ctx)
		if r.now().Sub(sliceStart) < r.budget {
			continue
		}
		if err := r.yielder.Yield(ctx); err != nil {
			return nil, fmt.Errorf("%w: yield after item %d: %w", ErrScheduling, i, err)
		}
		yields++
		sliceStart = r.now()
	}
	r.logger.Debug("batch pass complete",
		logging.Int("items", len(steps)),
		logging.Int("yields", yields),
		logging.Duration("elapsed", r.now().Sub(start)))
	return out, nil
}
