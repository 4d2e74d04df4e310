package bptree

// Iterator walks the entries of a tree from the maximum key downwards,
// following the leaf chain.
//
// An iterator is invalidated by any mutation of its tree.
type Iterator[K, V any] struct {
	leaf *leafNode[K, V]
	pos  int
}

// Last returns an iterator positioned at the entry with the maximum key, or
// nil if the tree is empty.
func (t *Tree[K, V]) Last() *Iterator[K, V] {
	if t.tail.isEmpty() {
		return nil
	}
	return &Iterator[K, V]{leaf: t.tail, pos: t.tail.keys.Len() - 1}
}

// Key returns the key at the current position.
func (it *Iterator[K, V]) Key() K {
	return it.leaf.keys.At(it.pos)
}

// Value returns the value at the current position.
func (it *Iterator[K, V]) Value() V {
	return it.leaf.values.At(it.pos)
}

// HasNext reports whether there is an entry with a smaller key.
func (it *Iterator[K, V]) HasNext() bool {
	return it.pos > 0 || it.leaf.prev != nil
}

// Next moves to the entry with the next smaller key. It returns false, and
// stays in place, if there is none.
func (it *Iterator[K, V]) Next() bool {
	if it.pos > 0 {
		it.pos--
		return true
	}
	if it.leaf.prev == nil {
		return false
	}
	it.leaf = it.leaf.prev
	it.pos = it.leaf.keys.Len() - 1
	return true
}

// Ascend calls fn for every entry in ascending key order.
//
// Iteration stops early if fn returns false.
func (t *Tree[K, V]) Ascend(fn func(key K, value V) bool) {
	if fn == nil {
		return
	}
	for leaf := t.firstLeaf(); leaf != nil; leaf = leaf.next {
		for i, k := range leaf.keys.All() {
			if !fn(k, leaf.values.At(i)) {
				return
			}
		}
	}
}

// Descend calls fn for every entry in descending key order.
//
// Iteration stops early if fn returns false.
func (t *Tree[K, V]) Descend(fn func(key K, value V) bool) {
	if fn == nil {
		return
	}
	for it := t.Last(); it != nil; {
		if !fn(it.Key(), it.Value()) || !it.Next() {
			return
		}
	}
}
