package ring

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree/internal/nilcheck"
)

// Ring is a circular buffer with fixed capacity.
//
// Elements live in elems[start], elems[start+1], ... wrapping around at
// len(elems) and ending just before elems[end]. As start == end is ambiguous,
// the full flag tells a full ring from an empty one.
type Ring[T any] struct {
	elems []T
	start int
	end   int
	full  bool
	isNil nilcheck.Checker[T]
}

// New creates an empty ring with the given capacity.
// It panics if capacity is less than 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic(errors.AssertionFailedf("ring: capacity must be positive, is %d", capacity))
	}
	return &Ring[T]{
		elems: make([]T, capacity),
		isNil: nilcheck.For[T](),
	}
}

// Len returns the number of elements in the ring.
func (r *Ring[T]) Len() int {
	switch {
	case r.full:
		return len(r.elems)
	case r.end >= r.start:
		return r.end - r.start
	}
	return len(r.elems) - r.start + r.end
}

// Cap returns the fixed capacity of the ring.
func (r *Ring[T]) Cap() int { return len(r.elems) }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return !r.full && r.start == r.end }

// IsFull reports whether the ring is at full capacity.
func (r *Ring[T]) IsFull() bool { return r.full }

func (r *Ring[T]) inc(i int) int {
	if i++; i == len(r.elems) {
		return 0
	}
	return i
}

func (r *Ring[T]) dec(i int) int {
	if i == 0 {
		return len(r.elems) - 1
	}
	return i - 1
}

// phys maps a logical position to a slot in the backing slice.
func (r *Ring[T]) phys(i int) int {
	return (r.start + i) % len(r.elems)
}

func (r *Ring[T]) outOfRange(i, n int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d outside [0, %d)", i, n)
}

// At returns the element at logical position i.
// It panics if i is outside [0, Len()), just as slice indexing does.
func (r *Ring[T]) At(i int) T {
	if n := r.Len(); i < 0 || i >= n {
		panic(errors.NewAssertionErrorWithWrappedErrf(r.outOfRange(i, n), "ring.At"))
	}
	return r.elems[r.phys(i)]
}

// Get returns the element at logical position i.
func (r *Ring[T]) Get(i int) (T, error) {
	if n := r.Len(); i < 0 || i >= n {
		var zero T
		return zero, r.outOfRange(i, n)
	}
	return r.elems[r.phys(i)], nil
}

// Set replaces the element at logical position i.
func (r *Ring[T]) Set(i int, e T) error {
	if n := r.Len(); i < 0 || i >= n {
		return r.outOfRange(i, n)
	}
	if r.isNil.IsNil(e) {
		return ErrNilElement
	}
	r.elems[r.phys(i)] = e
	return nil
}

// Front returns the first element without removing it.
func (r *Ring[T]) Front() (T, bool) {
	if r.IsEmpty() {
		var zero T
		return zero, false
	}
	return r.elems[r.start], true
}

// Back returns the last element without removing it.
func (r *Ring[T]) Back() (T, bool) {
	if r.IsEmpty() {
		var zero T
		return zero, false
	}
	return r.elems[r.dec(r.end)], true
}

func (r *Ring[T]) checkStore(e T) error {
	if r.isNil.IsNil(e) {
		return ErrNilElement
	}
	if r.full {
		return errors.Wrapf(ErrCapacityExceeded, "capacity %d", len(r.elems))
	}
	return nil
}

// PushBack appends e at the end of the ring.
func (r *Ring[T]) PushBack(e T) error {
	if err := r.checkStore(e); err != nil {
		return err
	}
	r.elems[r.end] = e
	r.end = r.inc(r.end)
	r.full = r.end == r.start
	return nil
}

// PushFront prepends e at the start of the ring.
func (r *Ring[T]) PushFront(e T) error {
	if err := r.checkStore(e); err != nil {
		return err
	}
	r.start = r.dec(r.start)
	r.elems[r.start] = e
	r.full = r.end == r.start
	return nil
}

// PopFront removes and returns the first element.
func (r *Ring[T]) PopFront() (T, error) {
	var zero T
	if r.IsEmpty() {
		return zero, ErrEmpty
	}
	e := r.elems[r.start]
	r.elems[r.start] = zero
	r.start = r.inc(r.start)
	r.full = false
	return e, nil
}

// PopBack removes and returns the last element.
func (r *Ring[T]) PopBack() (T, error) {
	var zero T
	if r.IsEmpty() {
		return zero, ErrEmpty
	}
	r.end = r.dec(r.end)
	e := r.elems[r.end]
	r.elems[r.end] = zero
	r.full = false
	return e, nil
}

// Insert puts e at logical position i, i in [0, Len()]. Elements on the
// shorter side of i are shifted by one slot to make room.
func (r *Ring[T]) Insert(i int, e T) error {
	n := r.Len()
	if i < 0 || i > n {
		return errors.Wrapf(ErrOutOfRange, "insert position %d outside [0, %d]", i, n)
	}
	if err := r.checkStore(e); err != nil {
		return err
	}
	if i >= n-i {
		// shift tail towards the end
		for j := n; j > i; j-- {
			r.elems[r.phys(j)] = r.elems[r.phys(j-1)]
		}
		r.end = r.inc(r.end)
	} else {
		// shift head towards the start
		r.start = r.dec(r.start)
		for j := 0; j < i; j++ {
			r.elems[r.phys(j)] = r.elems[r.phys(j+1)]
		}
	}
	r.elems[r.phys(i)] = e
	r.full = r.start == r.end
	return nil
}

// Remove deletes and returns the element at logical position i. Elements on
// the shorter side of i are shifted by one slot to close the gap.
func (r *Ring[T]) Remove(i int) (T, error) {
	var zero T
	n := r.Len()
	if i < 0 || i >= n {
		return zero, r.outOfRange(i, n)
	}
	e := r.elems[r.phys(i)]
	if n-1-i <= i {
		for j := i; j < n-1; j++ {
			r.elems[r.phys(j)] = r.elems[r.phys(j+1)]
		}
		r.elems[r.phys(n-1)] = zero
		r.end = r.dec(r.end)
	} else {
		for j := i; j > 0; j-- {
			r.elems[r.phys(j)] = r.elems[r.phys(j-1)]
		}
		r.elems[r.start] = zero
		r.start = r.inc(r.start)
	}
	r.full = false
	return e, nil
}

// RemoveFrom truncates the ring to its first i elements. A negative i
// empties the ring, i >= Len() leaves it unchanged.
func (r *Ring[T]) RemoveFrom(i int) {
	n := r.Len()
	if i < 0 {
		i = 0
	} else if i >= n {
		return
	}
	var zero T
	for j := i; j < n; j++ {
		r.elems[r.phys(j)] = zero
	}
	r.end = r.phys(i)
	r.full = false
}

// Clear removes all elements.
func (r *Ring[T]) Clear() {
	r.RemoveFrom(0)
	r.start, r.end = 0, 0
}

// Split divides a full ring into two halves. The receiver keeps the first
// Cap()/2 elements, the returned ring holds the remaining (Cap()+1)/2
// elements in order, starting at slot 0 of its backing slice. Both rings
// have the capacity of the receiver.
func (r *Ring[T]) Split() (*Ring[T], error) {
	if !r.full {
		return nil, errors.Wrapf(ErrInvalidState, "split of ring with %d/%d elements",
			r.Len(), len(r.elems))
	}
	c := len(r.elems)
	half := c / 2
	rest := New[T](c)
	for j := half; j < c; j++ {
		rest.elems[j-half] = r.elems[r.phys(j)]
	}
	rest.end = (c - half) % c
	rest.full = c-half == c
	r.RemoveFrom(half)
	tracer().Debugf("ring split %d -> %d + %d", c, r.Len(), rest.Len())
	return rest, nil
}

// Clone returns a copy of the ring. Elements are copied by assignment.
func (r *Ring[T]) Clone() *Ring[T] {
	c := &Ring[T]{
		elems: make([]T, len(r.elems)),
		start: r.start,
		end:   r.end,
		full:  r.full,
		isNil: r.isNil,
	}
	copy(c.elems, r.elems)
	return c
}

// All iterates over positions and elements from front to back.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := r.Len()
		for i := range n {
			if !yield(i, r.elems[r.phys(i)]) {
				return
			}
		}
	}
}

// Backward iterates over positions and elements from back to front.
func (r *Ring[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := r.Len() - 1; i >= 0; i-- {
			if !yield(i, r.elems[r.phys(i)]) {
				return
			}
		}
	}
}
