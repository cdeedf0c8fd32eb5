package probes

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/pilebones/go-udev/crawler"
	"github.com/pilebones/go-udev/netlink"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

const defaultStorageTimeout = 5 * time.Second

// storageSource fingerprints the attached block devices through a udev
// crawl of /sys. The crawl runs in the background, so this is the two-stage
// source in the builtin roster: Collect starts the crawl and the
// continuation drains it under a timeout.
type storageSource struct {
	timeout time.Duration
}

func newStorageSource(timeout time.Duration) storageSource {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return storageSource{timeout: timeout}
}

func (storageSource) Name() string { return "storage" }

func (s storageSource) Collect(_ context.Context, _ *probe.Environment) probe.Reading {
	queue := make(chan crawler.Device)
	errs := make(chan error)
	quit := crawler.ExistingDevices(queue, errs, diskMatcher())

	return probe.Deferred(func(ctx context.Context) (any, error) {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()

		disks := make([]string, 0, 8)
		for {
			select {
			case <-ctx.Done():
				close(quit)
				return nil, probe.Wrap(probe.ErrTimeout, "storage", "canceled before crawl settled", ctx.Err())
			case <-timer.C:
				close(quit)
				return nil, probe.Wrap(probe.ErrTimeout, "storage",
					fmt.Sprintf("device crawl exceeded %s", s.timeout), nil)
			case <-errs:
				// Per-entry sysfs read errors are expected on some kernels;
				// the crawl keeps going.
			case device, more := <-queue:
				if !more {
					sort.Strings(disks)
					return map[string]any{"disks": disks, "count": len(disks)}, nil
				}
				if signature := deviceSignature(device); signature != "" {
					disks = append(disks, signature)
				}
			}
		}
	})
}

// diskMatcher matches whole-disk uevents (DEVTYPE=disk); partitions would
// make the component churn with every repartition.
func diskMatcher() netlink.Matcher {
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Env: map[string]string{
			"DEVTYPE": "disk",
		},
	})
	return rules
}

func deviceSignature(device crawler.Device) string {
	name := device.Env["DEVNAME"]
	if name == "" && device.KObj != "" {
		name = filepath.Base(device.KObj)
	}
	if name == "" {
		return ""
	}
	return name + "@" + device.Env["MAJOR"] + ":" + device.Env["MINOR"]
}
