// Package capacity holds the container capacity limits and the
// linear-allocation cost estimator.
package capacity

import "github.com/dexpack/interdex/classmodel"

// Profile selects which linear-alloc ceiling applies.
type Profile int

const (
	// Modern is the default profile: 11,600 KiB per container.
	Modern Profile = iota
	// Legacy matches older, memory-constrained runtimes: 2,600 KiB.
	Legacy
)

const (
	modernMaxLinearAlloc = 11600 * 1024
	legacyMaxLinearAlloc = 2600 * 1024

	// MaxMethodRefs and MaxFieldRefs are checked with ">=" (overflow
	// once the count reaches the limit), so the effective usable count
	// is one less than the nominal
	// 65,535 dex limit. Read as intentional headroom for the canary
	// class and any later patching pass.
	MaxMethodRefs = 65535
	MaxFieldRefs  = 65535

	// MaxContainers is the container count ceiling, indices 0..99
	// inclusive. The packer does not read it: the enforced bound is
	// canary.MaxIndex, checked only when a secondary flush adds a
	// canary.
	MaxContainers = 100
)

// Limits is the set of capacity maxima one packing run enforces. It is
// built once from a Profile and is otherwise immutable.
type Limits struct {
	MaxLinearAlloc int
	MaxMethodRefs  int
	MaxFieldRefs   int
	MaxContainers  int
}

// NewLimits builds the capacity limits for the given profile.
func NewLimits(profile Profile) Limits {
	la := modernMaxLinearAlloc
	if profile == Legacy {
		la = legacyMaxLinearAlloc
	}
	return Limits{
		MaxLinearAlloc: la,
		MaxMethodRefs:  MaxMethodRefs,
		MaxFieldRefs:   MaxFieldRefs,
		MaxContainers:  MaxContainers,
	}
}

// EstimateLinearAlloc approximates a class's contribution to a
// container's runtime-loader memory cost. The algorithm only requires
// additivity across classes; this implementation approximates it from
// class layout (declared method count and reference-set size), and is
// guaranteed to return the same value for the same class on every call.
func EstimateLinearAlloc(class *classmodel.Class) int {
	const (
		perClassOverhead  = 40
		perMethodOverhead = 52
		perMethodRef      = 8
		perFieldRef       = 8
	)
	cost := perClassOverhead
	cost += len(class.Methods()) * perMethodOverhead
	cost += len(class.MethodRefs()) * perMethodRef
	cost += len(class.FieldRefs()) * perFieldRef
	return cost
}
