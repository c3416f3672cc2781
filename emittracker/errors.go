package emittracker

import "errors"

// ErrCapacityOverflowInPrimary is returned when emitting a class into
// the primary container would exceed any capacity limit. The primary
// container cannot overflow mid-packing.
var ErrCapacityOverflowInPrimary = errors.New("emittracker: capacity overflow in primary container")

// ErrTooManyContainers is returned when a secondary flush with
// canaries enabled would produce a container index beyond the maximum.
var ErrTooManyContainers = errors.New("emittracker: too many containers")
