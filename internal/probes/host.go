package probes

import (
	"context"
	"os"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

type hostSource struct{}

func (hostSource) Name() string { return "host" }

func (hostSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	hostname, err := os.Hostname()
	if err != nil {
		return probe.Fail(probe.Wrap(probe.ErrExecution, "host", "hostname", err))
	}
	return probe.Immediate(hostname)
}
