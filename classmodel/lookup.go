package classmodel

// ClassLookup maps a class's canonical name to its handle. Names are
// unique across the classes it was built from.
type ClassLookup map[string]*Class

// NewClassLookup builds a lookup from the union of the given
// containers. Callers are expected to pass containers whose class
// names are already unique; a later class with the same name silently
// overwrites an earlier one, matching the source's plain map-insert
// behavior.
func NewClassLookup(containers ...Container) ClassLookup {
	lookup := make(ClassLookup)
	for _, c := range containers {
		for _, cls := range c {
			lookup[cls.Name()] = cls
		}
	}
	return lookup
}

// Resolve looks up a class by name, returning (nil, false) if absent.
func (l ClassLookup) Resolve(name string) (*Class, bool) {
	cls, ok := l[name]
	return cls, ok
}
