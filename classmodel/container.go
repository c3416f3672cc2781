package classmodel

// Container is an ordered sequence of classes. It is the unit of
// output: the first container in a packer's result is the primary,
// all others are secondary.
type Container []*Class

// Names returns the ordered class names in this container, mostly
// useful for tests and logging.
func (c Container) Names() []string {
	names := make([]string, len(c))
	for i, cls := range c {
		names[i] = cls.Name()
	}
	return names
}

// Contains reports whether cls appears in this container.
func (c Container) Contains(cls *Class) bool {
	for _, x := range c {
		if x == cls {
			return true
		}
	}
	return false
}

// Flatten concatenates a sequence of containers into one ordered class
// list, preserving container order and intra-container order. This is
// the full packing scope a packer walks classes against.
func Flatten(containers []Container) []*Class {
	var out []*Class
	for _, c := range containers {
		out = append(out, c...)
	}
	return out
}
