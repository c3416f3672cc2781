// Package coldstart implements a fixed-point static reachability
// pruner: it decides which cold-start classes are no longer worth
// keeping on the hot path because no other retained cold-start class
// actually reaches them.
package coldstart

import "github.com/dexpack/interdex/classmodel"

// classSet is the adjacency-map idiom used throughout this package:
// membership tests and closure expansion both just touch a map, which
// tolerates cyclic class-reference graphs with no recursive descent,
// so there's no risk of unbounded recursion on a cycle.
type classSet map[*classmodel.Class]struct{}

func (s classSet) add(c *classmodel.Class) { s[c] = struct{}{} }
func (s classSet) has(c *classmodel.Class) bool {
	_, ok := s[c]
	return ok
}

// Prune returns the set of classes to treat as "no longer linked" to
// cold start: classes named in coldStartNames whose removal the
// fixed-point analysis below justifies. If enabled is false, it
// returns an empty set without doing any work.
func Prune(scope []*classmodel.Class, lookup classmodel.ClassLookup, coldStartNames []string, enabled bool) map[*classmodel.Class]struct{} {
	unreferenced := make(classSet)
	if !enabled {
		return unreferenced
	}

	coldstart := make(classSet)
	for _, name := range coldStartNames {
		if cls, ok := lookup.Resolve(name); ok {
			coldstart.add(cls)
		}
	}

	prevDrop := 0
	for {
		hit := collectHits(scope, coldstart)
		drop, keep := partition(coldstart, hit)

		if len(drop) == prevDrop {
			// Monotone convergence: the fixed point is reached once
			// a round drops exactly as many classes as the previous
			// round. On the very first round this can only be
			// satisfied by dropping nothing.
			for c := range drop {
				unreferenced.add(c)
			}
			break
		}
		prevDrop = len(drop)
		for c := range drop {
			unreferenced.add(c)
		}
		coldstart = keep
	}

	return unreferenced
}

// collectHits runs one round of hit collection: find every cold-start
// class reachable from another cold-start class's bytecode, add every
// rename-pinned class in the full scope, then close the result under
// type containment.
func collectHits(scope []*classmodel.Class, coldstart classSet) classSet {
	hit := make(classSet)

	// (a)-(b): cold-cold references via bytecode.
	for enclosing := range coldstart {
		for _, m := range enclosing.Methods() {
			for _, instr := range m.Instructions() {
				referenced := instr.ReferencedClass()
				if referenced == nil || referenced == enclosing {
					continue
				}
				if coldstart.has(referenced) {
					hit.add(referenced)
				}
			}
		}
	}

	// (c): classes pinned against renaming are always reachable.
	for _, cls := range scope {
		if !cls.CanRename() {
			hit.add(cls)
		}
	}

	// (d): close under type containment.
	snapshot := make([]*classmodel.Class, 0, len(hit))
	for c := range hit {
		snapshot = append(snapshot, c)
	}
	for _, c := range snapshot {
		for _, t := range c.TypeRefs() {
			hit.add(t)
		}
	}

	return hit
}

// partition splits coldstart into classes to drop (renamable and not
// hit) and classes to keep (everything else).
func partition(coldstart, hit classSet) (drop, keep classSet) {
	drop = make(classSet)
	keep = make(classSet)
	for c := range coldstart {
		if c.CanRename() && !hit.has(c) {
			drop.add(c)
		} else {
			keep.add(c)
		}
	}
	return drop, keep
}
