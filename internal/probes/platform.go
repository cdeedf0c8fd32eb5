package probes

import (
	"bytes"
	"context"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// platformSource reports the OS family plus kernel identity. The confidence
// estimator reads this component, so the "os" key must stay stable.
type platformSource struct{}

func (platformSource) Name() string { return "platform" }

func (platformSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	value := map[string]any{
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
	}
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		value["kernel"] = utsString(uts.Sysname[:])
		value["release"] = utsString(uts.Release[:])
		value["machine"] = utsString(uts.Machine[:])
	}
	return probe.Immediate(value)
}

func utsString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}
