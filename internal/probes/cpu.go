package probes

import (
	"context"
	"runtime"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

type cpuSource struct{}

func (cpuSource) Name() string { return "cpu" }

func (cpuSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	return probe.Immediate(map[string]any{
		"logical": runtime.NumCPU(),
		"arch":    runtime.GOARCH,
	})
}
