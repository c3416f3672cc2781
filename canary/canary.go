// Package canary synthesizes the sentinel class appended to the end
// of every secondary container when canaries are enabled.
package canary

import (
	"fmt"

	"github.com/dexpack/interdex/classmodel"
)

// Prefix is the name prefix that marks a class as a canary, regardless
// of its container index. The normal emit path never places a class
// whose name starts with this prefix.
const Prefix = "secondary/dex"

// objectSuperName is the root type every synthesized canary extends.
const objectSuperName = "java/lang/Object"

// MaxIndex is the highest secondary container index a canary name can
// carry; exceeding it is a fatal TooManyContainers error.
const MaxIndex = 99

// Name returns the canary class name for secondary container index n
// (the primary is index 0; the first secondary is n=1).
func Name(n int) string {
	return fmt.Sprintf("secondary/dex%02d/Canary", n)
}

// IsCanary reports whether cls's name matches the canary prefix.
func IsCanary(cls *classmodel.Class) bool {
	return len(cls.Name()) >= len(Prefix) && cls.Name()[:len(Prefix)] == Prefix
}

// Resolve finds the canary class for container index n in lookup, or
// synthesizes a fresh one (public, abstract, interface, extending the
// root Object type) if none exists. The bool result reports whether an
// existing class was found (false means a synthetic one was created).
func Resolve(lookup classmodel.ClassLookup, n int) (*classmodel.Class, bool) {
	name := Name(n)
	if existing, ok := lookup.Resolve(name); ok {
		return existing, true
	}
	return classmodel.NewSyntheticClass(name, objectSuperName), false
}
