package ring

import "github.com/cockroachdb/errors"

var (
	// ErrCapacityExceeded signals an attempt to store into a full ring.
	ErrCapacityExceeded = errors.New("ring: capacity exceeded")
	// ErrEmpty signals an attempt to pop from an empty ring.
	ErrEmpty = errors.New("ring: empty")
	// ErrOutOfRange signals an invalid positional index.
	ErrOutOfRange = errors.New("ring: index out of range")
	// ErrInvalidState signals an operation not permitted in the ring's
	// current state, e.g. splitting a ring which is not full.
	ErrInvalidState = errors.New("ring: invalid state")
	// ErrNilElement signals an attempt to store a nil element.
	ErrNilElement = errors.New("ring: nil element")
)
