package bptree

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("bptree: invalid configuration")
	// ErrNilKey signals a nil key argument.
	ErrNilKey = errors.New("bptree: nil key")
	// ErrNilValue signals a nil value argument.
	ErrNilValue = errors.New("bptree: nil value")
	// ErrDuplicateKey signals an attempt to add a key which is already present.
	ErrDuplicateKey = errors.New("bptree: duplicate key")
	// ErrKeyNotFound signals an attempt to remove a key which is not present.
	ErrKeyNotFound = errors.New("bptree: key not found")
	// ErrInvariantViolation is reported by Check for a structurally broken tree.
	ErrInvariantViolation = errors.New("bptree: invariant violation")
)
