// Package emittracker implements a mutable per-container accumulator:
// emit a class, and flush an in-progress container into the output
// list once it is full or the caller says it's done.
package emittracker

import (
	"fmt"

	"github.com/dexpack/interdex/canary"
	"github.com/dexpack/interdex/capacity"
	"github.com/dexpack/interdex/classmodel"
	"github.com/dexpack/interdex/refgather"
)

// ContainerStats reports the shape of one flushed container, for the
// caller to fold into an invocation-wide Stats record. Stats are
// returned, never accumulated in package globals, so concurrent
// invocations never share mutable state.
type ContainerStats struct {
	ClassCount int
	LinearSize int
	MethodRefs int
	FieldRefs  int
}

// Tracker is transient state for one in-progress container. Zero
// value is not useful; build one with NewTracker.
type Tracker struct {
	limits   capacity.Limits
	gatherer *refgather.Gatherer
	canaries bool

	// Lookup is this tracker's class-name scope (e.g. the primary
	// dex's classes only, or the whole module's classes).
	Lookup classmodel.ClassLookup

	laSize  int
	mrefs   map[classmodel.MethodRef]struct{}
	frefs   map[classmodel.FieldRef]struct{}
	outs    classmodel.Container
	emitted map[*classmodel.Class]struct{}
}

// NewTracker builds an empty tracker scoped to lookup.
func NewTracker(lookup classmodel.ClassLookup, limits capacity.Limits, gatherer *refgather.Gatherer, emitCanaries bool) *Tracker {
	return &Tracker{
		limits:   limits,
		gatherer: gatherer,
		canaries: emitCanaries,
		Lookup:   lookup,
		mrefs:    make(map[classmodel.MethodRef]struct{}),
		frefs:    make(map[classmodel.FieldRef]struct{}),
		emitted:  make(map[*classmodel.Class]struct{}),
	}
}

// Emitted reports whether class has already been placed into any
// container during this tracker's lifetime.
func (t *Tracker) Emitted(class *classmodel.Class) bool {
	_, ok := t.emitted[class]
	return ok
}

// MarkEmitted records class as already placed, without emitting it
// through this tracker. The packer uses this to seed a secondary
// tracker with the classes the primary phase already disposed of.
func (t *Tracker) MarkEmitted(class *classmodel.Class) {
	t.emitted[class] = struct{}{}
}

// Outs returns the classes scheduled into the current, not-yet-flushed
// container.
func (t *Tracker) Outs() classmodel.Container { return t.outs }

// Emit places class into the tracker's in-progress container:
//
//  1. Idempotent: already-emitted classes are a no-op.
//  2. Canary classes are never emitted by this path.
//  3. Capacity is checked against the set *including* the new class;
//     on overflow, a primary tracker fails, a secondary tracker
//     flushes first (so the overflowing class seeds the next
//     container) and the flushed container's stats reflect only the
//     classes it actually held.
func (t *Tracker) Emit(outputs *[]classmodel.Container, class *classmodel.Class, isPrimary bool) (*ContainerStats, error) {
	if t.Emitted(class) {
		return nil, nil
	}
	if canary.IsCanary(class) {
		return nil, nil
	}

	la := capacity.EstimateLinearAlloc(class)
	mrefsBefore := len(t.mrefs)
	frefsBefore := len(t.frefs)

	gathered := t.gatherer.Gather(class)
	for _, m := range gathered.Methods {
		t.mrefs[m] = struct{}{}
	}
	for _, f := range gathered.Fields {
		t.frefs[f] = struct{}{}
	}

	overflow := t.laSize+la > t.limits.MaxLinearAlloc ||
		len(t.mrefs) >= t.limits.MaxMethodRefs ||
		len(t.frefs) >= t.limits.MaxFieldRefs

	var flushed *ContainerStats
	if overflow {
		if isPrimary {
			return nil, fmt.Errorf(
				"%w: class %s would push linear alloc to %d (max %d), mrefs to %d (max %d), frefs to %d (max %d)",
				ErrCapacityOverflowInPrimary, class.Name(),
				t.laSize+la, t.limits.MaxLinearAlloc,
				len(t.mrefs), t.limits.MaxMethodRefs,
				len(t.frefs), t.limits.MaxFieldRefs)
		}
		var err error
		flushed, err = t.FlushSecondary(outputs, mrefsBefore, frefsBefore)
		if err != nil {
			return nil, err
		}
		// Re-add class's references into the now-empty tracker.
		for _, m := range gathered.Methods {
			t.mrefs[m] = struct{}{}
		}
		for _, f := range gathered.Fields {
			t.frefs[f] = struct{}{}
		}
	}

	t.laSize += la
	t.outs = append(t.outs, class)
	t.emitted[class] = struct{}{}
	return flushed, nil
}

// reset clears the tracker's in-progress container state. The emitted
// set is intentionally preserved across flushes.
func (t *Tracker) reset() {
	t.laSize = 0
	t.mrefs = make(map[classmodel.MethodRef]struct{})
	t.frefs = make(map[classmodel.FieldRef]struct{})
	t.outs = nil
}

// FlushPrimary appends the tracker's in-progress container to outputs
// unconditionally (even if empty) and resets the tracker. It never
// synthesizes a canary: the primary container has no canary.
func (t *Tracker) FlushPrimary(outputs *[]classmodel.Container) *ContainerStats {
	stats := &ContainerStats{
		ClassCount: len(t.outs),
		LinearSize: t.laSize,
		MethodRefs: len(t.mrefs),
		FieldRefs:  len(t.frefs),
	}
	*outputs = append(*outputs, t.outs)
	t.reset()
	return stats
}

// FlushSecondary appends the tracker's in-progress container to
// outputs, first appending a canary class if canaries are enabled.
// It is a no-op if the tracker has no classes pending
// (no empty containers are ever emitted). mrefsSize/frefsSize let the
// caller report pre-overflow reference counts; pass len(t.mrefs) /
// len(t.frefs) via FlushSecondaryNow for the common case.
func (t *Tracker) FlushSecondary(outputs *[]classmodel.Container, mrefsSize, frefsSize int) (*ContainerStats, error) {
	if len(t.outs) == 0 {
		return nil, nil
	}
	if t.canaries {
		n := len(*outputs)
		if n > canary.MaxIndex {
			return nil, fmt.Errorf("%w: container index %d exceeds max %d", ErrTooManyContainers, n, canary.MaxIndex)
		}
		canaryClass, found := canary.Resolve(t.Lookup, n)
		_ = found // MissingCanaryClass is non-fatal; Resolve already synthesized one.
		t.outs = append(t.outs, canaryClass)
	}

	stats := &ContainerStats{
		ClassCount: len(t.outs),
		LinearSize: t.laSize,
		MethodRefs: mrefsSize,
		FieldRefs:  frefsSize,
	}
	*outputs = append(*outputs, t.outs)
	t.reset()
	return stats, nil
}

// FlushSecondaryNow flushes using the tracker's current reference
// counts, for the common "flush because the caller says we're done"
// case rather than the overflow-snapshot case.
func (t *Tracker) FlushSecondaryNow(outputs *[]classmodel.Container) (*ContainerStats, error) {
	return t.FlushSecondary(outputs, len(t.mrefs), len(t.frefs))
}
