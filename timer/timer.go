// Package timer accumulates CPU time spent inside measured sections,
// the Go equivalent of the original synth.timer.Timer context manager:
// search strategies and solver adapters wrap each solve/oracle call in
// Measure so stats.Row can report "time" as CPU time rather than wall
// clock, which stays stable across a loaded machine.
package timer

import (
	"sync"
	"syscall"
	"time"
)

// Timer accumulates elapsed CPU time across repeated Measure calls. The
// zero value is ready to use.
type Timer struct {
	mu      sync.Mutex
	elapsed time.Duration
}

// Elapsed returns the total CPU time accumulated so far.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Measure runs f, adding the CPU time it consumed to the timer's running
// total. process selects whose CPU time is measured: false for this
// process (RUSAGE_SELF, the in-process solver backends), true for
// children (RUSAGE_CHILDREN, solver.Process's subprocess backend).
func (t *Timer) Measure(process bool, f func()) {
	start := cpuTime(process)
	f()
	spent := cpuTime(process) - start
	t.mu.Lock()
	t.elapsed += spent
	t.mu.Unlock()
}

func cpuTime(process bool) time.Duration {
	who := syscall.RUSAGE_SELF
	if process {
		who = syscall.RUSAGE_CHILDREN
	}
	var usage syscall.Rusage
	if err := syscall.Getrusage(who, &usage); err != nil {
		return 0
	}
	return time.Duration(usage.Utime.Nano())
}
