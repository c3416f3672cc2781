// Package srcstring shortens the debug-info source-file string every
// class carries, replacing it with some other string already present
// in the same container so the constant pool doesn't pay for two
// copies of similar-looking file paths. It is a straight port of the
// shorten-srcstrings pass's algorithm, run as an independent second
// pass over already-packed containers rather than during packing
// itself.
package srcstring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dexpack/interdex/classmodel"
)

// Result reports what one Shorten call did, for the caller to log or
// fold into its own stats.
type Result struct {
	Shortened  int
	BytesSaved int
	// Mapping records, for each original source-file string, every
	// string it was replaced with across the run (several, if several
	// containers held the same original name), sorted and
	// deduplicated.
	Mapping map[string][]string
}

// Shorten rewrites every class's SourceFile across containers,
// container by container, replacing each distinct source-file string
// with the first available "suitable" candidate string still unused
// in that container: not itself a ".java"-shaped name, containing
// none of '\n', '\t', ':', ',', and not already picked by maybe a
// sibling container in this run. Candidate strings are drawn from
// that container's own method names, sorted for determinism.
//
// A source-file string with no suitable candidate in its container is
// left unshortened, matching the ported pass's "warn and keep the
// original" fallback.
func Shorten(containers []classmodel.Container) Result {
	result := Result{Mapping: make(map[string][]string)}
	shortenedUsed := make(map[string]struct{})

	for _, container := range containers {
		candidates := candidateStrings(container)
		srcToShortened := make(map[string]string)

		for _, cls := range container {
			src := cls.SourceFile()
			if src == "" {
				continue
			}
			shortened, alreadyMapped := srcToShortened[src]
			if !alreadyMapped {
				picked, found := pickCandidate(shortenedUsed, &candidates)
				if !found {
					shortened = src
				} else {
					shortened = picked
					result.Shortened++
					result.BytesSaved += len(src) - len(shortened)
				}
				srcToShortened[src] = shortened
				shortenedUsed[shortened] = struct{}{}
				result.Mapping[src] = append(result.Mapping[src], shortened)
			}
			cls.SetSourceFile(shortened)
		}
	}

	for src, shortened := range result.Mapping {
		sort.Strings(shortened)
		result.Mapping[src] = dedupSorted(shortened)
	}
	return result
}

// candidateStrings returns the container's pool of replacement
// strings, sorted and deduplicated so pickCandidate consumes them
// deterministically.
func candidateStrings(container classmodel.Container) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cls := range container {
		for _, m := range cls.Methods() {
			if _, ok := seen[m.Name()]; ok {
				continue
			}
			seen[m.Name()] = struct{}{}
			out = append(out, m.Name())
		}
	}
	sort.Strings(out)
	return out
}

// pickCandidate pops candidates from the back until it finds one that
// is reasonable, doesn't look like a ".java" file name, and hasn't
// already been used as a shortened name elsewhere in this run.
func pickCandidate(used map[string]struct{}, candidates *[]string) (string, bool) {
	for len(*candidates) > 0 {
		last := len(*candidates) - 1
		val := (*candidates)[last]
		*candidates = (*candidates)[:last]

		if _, already := used[val]; already {
			continue
		}
		if maybeFileName(val) {
			continue
		}
		if !isReasonableString(val) {
			continue
		}
		return val, true
	}
	return "", false
}

func maybeFileName(s string) bool {
	return strings.HasSuffix(s, ".java")
}

func isReasonableString(s string) bool {
	if len(s) == 0 {
		return false
	}
	return !strings.ContainsAny(s, "\n\t:,")
}

func dedupSorted(in []string) []string {
	out := in[:0]
	var prev string
	first := true
	for _, v := range in {
		if first || v != prev {
			out = append(out, v)
			prev = v
			first = false
		}
	}
	return out
}

// FormatMapping renders Result.Mapping as the ported pass's mapping
// file format: one "original -> shortened, shortened," line per
// original source-file string, each replacement preceded by a space
// and followed by a comma.
func (r Result) FormatMapping() string {
	keys := make([]string, 0, len(r.Mapping))
	for k := range r.Mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s ->", k)
		for _, v := range r.Mapping[k] {
			fmt.Fprintf(&b, " %s,", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
