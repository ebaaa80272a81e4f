//go:build linux
// +build linux

package engine

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs work under a hardware instruction counter when the
// perf_event subsystem grants one. work runs exactly once whether or not the
// counter opens; the count is zero when it is unavailable.
func countInstructions(work func()) (instructions uint64) {
	var ran bool
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		work()
		return nil
	})
	if !ran {
		work()
	}
	if err == nil && pv != nil {
		instructions = pv.Value
	}
	return
}
