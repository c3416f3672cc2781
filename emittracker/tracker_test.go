package emittracker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/capacity"
	"github.com/dexpack/interdex/classmodel"
	"github.com/dexpack/interdex/refgather"
)

func newTestTracker(canaries bool) *Tracker {
	return NewTracker(classmodel.NewClassLookup(), capacity.NewLimits(capacity.Modern), refgather.NewGatherer(), canaries)
}

func TestEmitIsIdempotent(t *testing.T) {
	tracker := newTestTracker(false)
	cls := classmodel.NewClass("A")
	var outputs []classmodel.Container

	_, err := tracker.Emit(&outputs, cls, false)
	require.NoError(t, err)
	_, err = tracker.Emit(&outputs, cls, false)
	require.NoError(t, err)

	require.Len(t, tracker.Outs(), 1)
}

func TestEmitSkipsCanaryClasses(t *testing.T) {
	tracker := newTestTracker(false)
	cls := classmodel.NewClass("secondary/dex01/Canary")
	var outputs []classmodel.Container

	_, err := tracker.Emit(&outputs, cls, false)
	require.NoError(t, err)
	require.Empty(t, tracker.Outs())
}

func TestPrimaryOverflowIsFatal(t *testing.T) {
	limits := capacity.Limits{MaxLinearAlloc: 1, MaxMethodRefs: 10, MaxFieldRefs: 10, MaxContainers: 100}
	tracker := NewTracker(classmodel.NewClassLookup(), limits, refgather.NewGatherer(), false)
	cls := classmodel.NewClass("Huge")
	cls.AddMethod("a")
	cls.AddMethod("b")
	var outputs []classmodel.Container

	_, err := tracker.Emit(&outputs, cls, true)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCapacityOverflowInPrimary))
	require.Empty(t, outputs)
}

func TestSecondaryOverflowFlushesAndSeedsNext(t *testing.T) {
	limits := capacity.Limits{MaxLinearAlloc: 1 << 30, MaxMethodRefs: 2, MaxFieldRefs: 1 << 30, MaxContainers: 100}
	tracker := NewTracker(classmodel.NewClassLookup(), limits, refgather.NewGatherer(), false)
	var outputs []classmodel.Container

	target := classmodel.NewClass("Target")
	a := classmodel.NewClass("A")
	a.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "m1"})
	b := classmodel.NewClass("B")
	b.AddMethodRef(classmodel.MethodRef{DefiningClass: target, Name: "m2"})

	_, err := tracker.Emit(&outputs, a, false)
	require.NoError(t, err)
	flushed, err := tracker.Emit(&outputs, b, false)
	require.NoError(t, err)
	require.NotNil(t, flushed)
	require.Equal(t, 1, flushed.ClassCount)

	require.Len(t, outputs, 1)
	require.Equal(t, classmodel.Container{a}, outputs[0])
	require.Equal(t, classmodel.Container{b}, tracker.Outs())
}

func TestFlushSecondaryAddsCanaryAndIsSkippedWhenEmpty(t *testing.T) {
	tracker := newTestTracker(true)
	var outputs []classmodel.Container

	stats, err := tracker.FlushSecondaryNow(&outputs)
	require.NoError(t, err)
	require.Nil(t, stats)
	require.Empty(t, outputs)

	cls := classmodel.NewClass("A")
	_, err = tracker.Emit(&outputs, cls, false)
	require.NoError(t, err)

	stats, err = tracker.FlushSecondaryNow(&outputs)
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.Len(t, outputs, 1)
	require.Len(t, outputs[0], 2)
	require.True(t, outputs[0][1].IsSynthetic())
	require.Equal(t, "secondary/dex00/Canary", outputs[0][1].Name())
}

func TestFlushSecondaryTooManyContainers(t *testing.T) {
	tracker := newTestTracker(true)
	// Pretend 100 containers (indices 0..99) already exist; the next
	// flush would need canary index 100, which exceeds canary.MaxIndex.
	outputs := make([]classmodel.Container, 100)

	_, err := tracker.Emit(&outputs, classmodel.NewClass("Seed"), false)
	require.NoError(t, err)

	_, err = tracker.FlushSecondaryNow(&outputs)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTooManyContainers))
}
