package probes

import (
	"time"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// Options configures the builtin roster.
type Options struct {
	// StorageTimeout bounds the storage source's device crawl.
	StorageTimeout time.Duration
}

// Builtin returns the builtin sources in their fixed registration order.
func Builtin(opts Options) []probe.Source {
	return []probe.Source{
		platformSource{},
		cpuSource{},
		memorySource{},
		hostSource{},
		localeSource{},
		timezoneSource{},
		newStorageSource(opts.StorageTimeout),
	}
}
