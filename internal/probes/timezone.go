package probes

import (
	"context"
	"time"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

type timezoneSource struct{}

func (timezoneSource) Name() string { return "timezone" }

func (timezoneSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	name, offset := time.Now().Zone()
	return probe.Immediate(map[string]any{
		"name":           name,
		"offset_seconds": offset,
	})
}
