// Package refgather enumerates the method and field references a
// class contributes. Gather is read-only and deterministic for a
// fixed class; Gatherer memoizes that result behind a bounded LRU so
// repeated emit attempts (e.g. the retry wrapper re-running the whole
// pack) don't redo the walk.
package refgather

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dexpack/interdex/classmodel"
)

// defaultCacheSize bounds the memoization cache. A production binary
// packs on the order of tens of thousands of classes; this keeps the
// working set small without ever needing an eviction tune-up.
const defaultCacheSize = 65536

// Result is the method/field references gathered for one class.
// Duplicates within a class are preserved; Packer/Tracker callers are
// the ones that dedup into a set.
type Result struct {
	Methods []classmodel.MethodRef
	Fields  []classmodel.FieldRef
}

// Gatherer wraps Gather with a per-class memoization cache.
type Gatherer struct {
	cache *lru.Cache[*classmodel.Class, Result]
}

// NewGatherer builds a Gatherer with the default cache size.
func NewGatherer() *Gatherer {
	cache, err := lru.New[*classmodel.Class, Result](defaultCacheSize)
	if err != nil {
		// Only fails for a non-positive size, which defaultCacheSize never is.
		panic(err)
	}
	return &Gatherer{cache: cache}
}

// Gather returns the method and field references embedded in class's
// constant pool. The result is cached: calling it twice for the same
// class returns the identical slices without re-walking the class.
func (g *Gatherer) Gather(class *classmodel.Class) Result {
	if g == nil {
		return gather(class)
	}
	if cached, ok := g.cache.Get(class); ok {
		return cached
	}
	result := gather(class)
	g.cache.Add(class, result)
	return result
}

// gather is the uncached primitive operation: it returns exactly the
// references the class carries, with no deduplication.
func gather(class *classmodel.Class) Result {
	return Result{
		Methods: class.MethodRefs(),
		Fields:  class.FieldRefs(),
	}
}
