package interdex

import (
	"github.com/google/uuid"

	"github.com/dexpack/interdex/emittracker"
)

// Stats is the per-invocation report: every call to Pack or
// PackWithRetry returns one of these instead of mutating shared
// state, so repeated invocations never need external serialization to
// stay correct.
type Stats struct {
	// InvocationID identifies this run in logs, independent of any
	// process-wide counter.
	InvocationID uuid.UUID

	// Containers holds one entry per flushed output container, in
	// output order.
	Containers []emittracker.ContainerStats

	// ColdStartClassesInPrimary counts cold-start entries that landed
	// in the primary container.
	ColdStartClassesInPrimary int

	// ClassesSkippedInPrimary and ClassesSkippedInSecondary count
	// cold-start entries dropped by the pruner before reaching the
	// primary or secondary emit phases, respectively.
	ClassesSkippedInPrimary   int
	ClassesSkippedInSecondary int

	// Retried reports whether PackWithRetry had to rerun the packer
	// with early cutoff disabled because the first attempt grew the
	// container count.
	Retried bool
}

func newStats() *Stats {
	return &Stats{InvocationID: uuid.New()}
}

func (s *Stats) recordFlush(flushed *emittracker.ContainerStats) {
	if flushed == nil {
		return
	}
	s.Containers = append(s.Containers, *flushed)
}

// TotalClasses sums the class count across every reported container.
func (s *Stats) TotalClasses() int {
	total := 0
	for _, c := range s.Containers {
		total += c.ClassCount
	}
	return total
}
