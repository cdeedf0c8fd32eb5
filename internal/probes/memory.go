package probes

import (
	"context"

	"golang.org/x/sys/unix"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

const memoryLastGoodKey = "memory.total_bytes"

// memorySource reports total physical memory. Some kernels briefly report
// zero during early boot or under memory hotplug, so the source keeps a
// last-known-good reading in the Environment and falls back to it.
type memorySource struct{}

func (memorySource) Name() string { return "memory" }

func (memorySource) Collect(_ context.Context, env *probe.Environment) probe.Reading {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return probe.Fail(probe.Wrap(probe.ErrExecution, "memory", "sysinfo", err))
	}
	total := uint64(info.Totalram) * uint64(info.Unit)
	if total == 0 {
		previous, ok := env.LastGood(memoryLastGoodKey)
		recovered, valid := previous.(uint64)
		if !ok || !valid || recovered == 0 {
			return probe.Fail(probe.Wrap(probe.ErrExecution, "memory", "zero total with no prior reading", nil))
		}
		total = recovered
	} else {
		env.RememberGood(memoryLastGoodKey, total)
	}
	return probe.Immediate(map[string]any{"total_bytes": total})
}
