// Package interdex implements the top-level packing driver: the
// InterDex algorithm itself. It builds a class lookup, runs the
// cold-start pruner, emits the primary container (optionally), then
// emits secondaries in cold-start order followed by leftovers,
// honoring the DexEndMarker sentinel.
package interdex

import (
	"strings"

	"github.com/dexpack/interdex/capacity"
	"github.com/dexpack/interdex/classmodel"
	"github.com/dexpack/interdex/coldstart"
	"github.com/dexpack/interdex/emittracker"
	"github.com/dexpack/interdex/refgather"
)

// dexEndMarker is the only recognized sentinel in a cold-start name
// list: any entry containing this substring forces a flush of the
// current secondary container.
const dexEndMarker = "DexEndMarker"

// Options configures one packing run.
type Options struct {
	// ColdStartClasses is the external cold-start ordering hint. May
	// contain names that don't resolve in the input, and the
	// DexEndMarker sentinel.
	ColdStartClasses []string

	// AllowCuttingOff is reserved for flush-threshold policy variants;
	// in this design it has no effect inside a single Pack call and
	// only matters to PackWithRetry's retry decision.
	AllowCuttingOff bool

	// StaticPruneClasses enables the cold-start reachability pruner.
	// If false, Prune always returns an empty set.
	StaticPruneClasses bool

	// NormalPrimaryDex disables the "keep container 0's class set
	// fixed" behavior when true.
	NormalPrimaryDex bool

	// EmitCanaries enables canary synthesis at the end of every
	// secondary container.
	EmitCanaries bool

	// Profile selects the linear-alloc ceiling.
	Profile capacity.Profile

	// Gatherer overrides the reference-gathering cache. A fresh one
	// is created if nil.
	Gatherer *refgather.Gatherer

	// Logger receives non-fatal diagnostics. NopLogger{} is used if
	// nil.
	Logger Logger
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return NopLogger{}
	}
	return o.Logger
}

// Pack runs the InterDex packing algorithm once, with no retry. Most
// callers want PackWithRetry instead.
func Pack(containers []classmodel.Container, opts Options) ([]classmodel.Container, *Stats, error) {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = refgather.NewGatherer()
	}
	return packOnce(containers, opts, gatherer)
}

// PackWithRetry runs Pack, and if the result used more containers than
// the input provided, reruns it with AllowCuttingOff disabled. The
// returned Stats describes whichever attempt's result is returned.
func PackWithRetry(containers []classmodel.Container, opts Options) ([]classmodel.Container, *Stats, error) {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = refgather.NewGatherer()
	}

	firstOpts := opts
	firstOpts.AllowCuttingOff = true
	outputs, stats, err := packOnce(containers, firstOpts, gatherer)
	if err != nil {
		return nil, nil, err
	}
	if len(outputs) <= len(containers) {
		return outputs, stats, nil
	}

	opts.logger().Verbose(1,
		"interdex grew the number of containers from %d to %d, retrying without early cutoff",
		len(containers), len(outputs))

	retryOpts := opts
	retryOpts.AllowCuttingOff = false
	outputs, stats, err = packOnce(containers, retryOpts, gatherer)
	if err != nil {
		return nil, nil, err
	}
	stats.Retried = true
	return outputs, stats, nil
}

func packOnce(containers []classmodel.Container, opts Options, gatherer *refgather.Gatherer) ([]classmodel.Container, *Stats, error) {
	logger := opts.logger()
	limits := capacity.NewLimits(opts.Profile)
	stats := newStats()

	lookup := classmodel.NewClassLookup(containers...)
	scope := classmodel.Flatten(containers)

	unreferenced := coldstart.Prune(scope, lookup, opts.ColdStartClasses, opts.StaticPruneClasses)

	var outputs []classmodel.Container
	det := emittracker.NewTracker(lookup, limits, gatherer, opts.EmitCanaries)

	if !opts.NormalPrimaryDex && len(containers) > 0 {
		if err := packPrimary(containers[0], opts, limits, gatherer, unreferenced, &outputs, stats, det, logger); err != nil {
			return nil, nil, err
		}
	}

	// Secondary ordered phase: place cold-start classes into
	// secondaries in hint order, honoring the end-marker sentinel.
	for _, name := range opts.ColdStartClasses {
		cls, ok := lookup.Resolve(name)
		if !ok {
			if strings.Contains(name, dexEndMarker) {
				logger.Verbose(1, "terminating container due to %s", dexEndMarker)
				flushed, err := det.FlushSecondaryNow(&outputs)
				if err != nil {
					return nil, nil, err
				}
				stats.recordFlush(flushed)
			} else {
				logger.Verbose(4, "no such cold-start entry %s", name)
			}
			continue
		}
		if _, pruned := unreferenced[cls]; pruned {
			stats.ClassesSkippedInSecondary++
			continue
		}
		flushed, err := det.Emit(&outputs, cls, false)
		if err != nil {
			return nil, nil, err
		}
		stats.recordFlush(flushed)
	}

	// Cold-start-unreferenced phase: classes the pruner dropped are
	// still included, just after the referenced ones.
	for _, name := range opts.ColdStartClasses {
		cls, ok := lookup.Resolve(name)
		if !ok {
			continue
		}
		if _, pruned := unreferenced[cls]; !pruned {
			continue
		}
		flushed, err := det.Emit(&outputs, cls, false)
		if err != nil {
			return nil, nil, err
		}
		stats.recordFlush(flushed)
	}

	// Leftovers phase: everything not yet emitted, in original scope
	// order. Idempotent emit skips classes already placed.
	for _, cls := range scope {
		flushed, err := det.Emit(&outputs, cls, false)
		if err != nil {
			return nil, nil, err
		}
		stats.recordFlush(flushed)
	}

	if len(det.Outs()) > 0 {
		flushed, err := det.FlushSecondaryNow(&outputs)
		if err != nil {
			return nil, nil, err
		}
		stats.recordFlush(flushed)
	}

	return outputs, stats, nil
}

// packPrimary emits container 0 according to cold-start order first,
// then its remaining classes, flushes it as the primary container,
// and marks its classes emitted in the secondary tracker so they are
// never placed again.
func packPrimary(
	primaryContainer classmodel.Container,
	opts Options,
	limits capacity.Limits,
	gatherer *refgather.Gatherer,
	unreferenced map[*classmodel.Class]struct{},
	outputs *[]classmodel.Container,
	stats *Stats,
	det *emittracker.Tracker,
	logger Logger,
) error {
	primaryLookup := classmodel.NewClassLookup(primaryContainer)
	primaryTracker := emittracker.NewTracker(primaryLookup, limits, gatherer, false)

	for _, name := range opts.ColdStartClasses {
		cls, ok := primaryLookup.Resolve(name)
		if !ok {
			logger.Verbose(4, "no such entry %s", name)
			continue
		}
		if _, pruned := unreferenced[cls]; pruned {
			logger.Verbose(3, "%s no longer linked to cold-start set", cls.Name())
			stats.ClassesSkippedInPrimary++
			continue
		}
		if _, err := primaryTracker.Emit(outputs, cls, true); err != nil {
			return err
		}
		stats.ColdStartClassesInPrimary++
	}
	for _, cls := range primaryContainer {
		if _, err := primaryTracker.Emit(outputs, cls, true); err != nil {
			return err
		}
	}

	flushed := primaryTracker.FlushPrimary(outputs)
	stats.recordFlush(flushed)

	for _, cls := range primaryContainer {
		det.MarkEmitted(cls)
	}
	return nil
}
