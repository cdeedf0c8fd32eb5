package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhyswan/fingerprintjs/internal/batch"
	"github.com/zhyswan/fingerprintjs/internal/component"
	"github.com/zhyswan/fingerprintjs/internal/confidence"
	"github.com/zhyswan/fingerprintjs/internal/load"
	"github.com/zhyswan/fingerprintjs/internal/logging"
	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// Config adjusts pipeline behavior. Zero values select defaults.
type Config struct {
	// SliceBudget bounds synchronous work between yield points.
	SliceBudget time.Duration
	// Exclude lists source names to skip for a run. Excluded sources never
	// appear in the component set.
	Exclude []string
	// Yielder overrides the suspension primitive, mainly for tests.
	Yielder batch.Yielder
	Logger  *slog.Logger
}

// Engine runs registered sources and produces identification results.
type Engine struct {
	sources []probe.Source
	exclude map[string]struct{}
	runner  *batch.Runner
	logger  *slog.Logger
}

// NewEngine validates the registry and builds an engine. Source names must
// be unique and non-empty; registration order is preserved.
func NewEngine(sources []probe.Source, cfg Config) (*Engine, error) {
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		name := strings.TrimSpace(src.Name())
		if name == "" {
			return nil, fmt.Errorf("source with empty name")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate source name %q", name)
		}
		seen[name] = struct{}{}
	}

	exclude := make(map[string]struct{}, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		exclude[strings.TrimSpace(name)] = struct{}{}
	}

	logger := logging.NewComponentLogger(cfg.Logger, "identity")
	return &Engine{
		sources: append([]probe.Source(nil), sources...),
		exclude: exclude,
		runner: batch.NewRunner(batch.Options{
			SliceBudget: cfg.SliceBudget,
			Yielder:     cfg.Yielder,
			Logger:      cfg.Logger,
		}),
		logger: logger,
	}, nil
}

// Identify runs every non-excluded source against env and assembles the
// result. Per-source failures are recorded as error components and never
// abort the run; only a scheduling failure returns an error.
func (e *Engine) Identify(ctx context.Context, env *probe.Environment) (*Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	active := e.activeSources()
	names := make([]string, len(active))
	for i, src := range active {
		names[i] = src.Name()
	}

	e.logger.Debug("identification started",
		logging.String(logging.FieldRunID, runID),
		logging.Int("sources", len(active)),
		logging.Int("excluded", len(e.sources)-len(active)))

	buildSteps := make([]func(context.Context) load.Pending, len(active))
	for i, src := range active {
		src := src
		buildSteps[i] = func(ctx context.Context) load.Pending {
			return load.Start(ctx, src, env)
		}
	}
	pendings, err := batch.Run(ctx, e.runner, buildSteps)
	if err != nil {
		return nil, fmt.Errorf("build source loaders: %w", err)
	}

	resolveSteps := make([]func(context.Context) probe.Outcome, len(pendings))
	for i, pending := range pendings {
		pending := pending
		resolveSteps[i] = func(ctx context.Context) probe.Outcome {
			return pending(ctx)
		}
	}
	outcomes, err := batch.Run(ctx, e.runner, resolveSteps)
	if err != nil {
		return nil, fmt.Errorf("resolve source outcomes: %w", err)
	}

	set, err := component.Zip(names, outcomes)
	if err != nil {
		return nil, fmt.Errorf("aggregate components: %w", err)
	}

	failures := 0
	for _, c := range set.Components() {
		if c.Outcome.Failed() {
			failures++
			e.logger.Warn("source failed",
				logging.String(logging.FieldRunID, runID),
				logging.String(logging.FieldProbe, c.Name),
				logging.Error(c.Outcome.Err),
				logging.String(logging.FieldErrorHint, "component recorded as error; identifier remains valid"))
		}
	}

	result := &Result{
		RunID:         runID,
		Components:    set,
		Confidence:    confidence.FromComponents(set),
		SchemaVersion: SchemaVersion,
		CreatedAt:     started,
	}

	e.logger.Info("identification complete",
		logging.String(logging.FieldRunID, runID),
		logging.Int("components", set.Len()),
		logging.Int("failed_components", failures),
		logging.Float64("confidence", result.Confidence.Score),
		logging.Duration("elapsed", time.Since(started)))
	return result, nil
}

func (e *Engine) activeSources() []probe.Source {
	if len(e.exclude) == 0 {
		return e.sources
	}
	active := make([]probe.Source, 0, len(e.sources))
	for _, src := range e.sources {
		if _, skip := e.exclude[src.Name()]; skip {
			continue
		}
		active = append(active, src)
	}
	return active
}
