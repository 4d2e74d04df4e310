package bptree

import "github.com/cockroachdb/errors"

// Check validates structural tree invariants: key order, separators equal to
// child minima, parent links, fill levels, uniform leaf depth, the leaf
// chain, the tail and the entry count.
//
// Check walks the whole tree and is meant for tests and debugging.
func (t *Tree[K, V]) Check() error {
	err := t.check()
	if err != nil {
		tracer().Errorf("bptree: %v", err)
	}
	return err
}

func violation(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariantViolation, format, args...)
}

func (t *Tree[K, V]) check() error {
	if t.root == nil {
		return violation("nil root")
	}
	if t.root.header().parent != nil {
		return violation("root has a parent")
	}
	var leaves []*leafNode[K, V]
	entries, _, err := t.checkNode(t.root, true, &leaves)
	if err != nil {
		return err
	}
	if int64(entries) != t.size.Load() {
		return violation("entry count %d, tree has %d", t.size.Load(), entries)
	}
	for i, leaf := range leaves {
		var prev, next *leafNode[K, V]
		if i > 0 {
			prev = leaves[i-1]
		}
		if i+1 < len(leaves) {
			next = leaves[i+1]
		}
		if leaf.prev != prev || leaf.next != next {
			return violation("leaf chain broken at leaf %d of %d", i, len(leaves))
		}
	}
	if t.tail != leaves[len(leaves)-1] {
		return violation("tail is not the last leaf")
	}
	if t.recent != nil {
		found := false
		for _, leaf := range leaves {
			found = found || leaf == t.recent
		}
		if !found {
			return violation("cached leaf is not part of the tree")
		}
	}
	return nil
}

// checkNode validates the subtree of n and appends its leaves in order.
func (t *Tree[K, V]) checkNode(n treeNode[K, V], isRoot bool, leaves *[]*leafNode[K, V]) (entries int, height int, err error) {
	keys := nodeKeys(n)
	if keys.IsFull() {
		return 0, 0, violation("node holds %d entries at capacity %d", keys.Len(), keys.Cap())
	}
	if (!isRoot || !n.isLeaf()) && n.isEmpty() {
		return 0, 0, violation("empty node below root or empty inner root")
	}
	for i := 1; i < keys.Len(); i++ {
		if t.cmp(keys.At(i-1), keys.At(i)) >= 0 {
			return 0, 0, violation("keys out of order at position %d", i)
		}
	}
	if h := n.header(); !isRoot && !n.isEmpty() {
		if first, _ := keys.Front(); !h.hasLow || t.cmp(h.low, first) != 0 {
			return 0, 0, violation("left range key differs from node minimum %v", first)
		}
	}
	if n.isLeaf() {
		leaf := n.(*leafNode[K, V])
		if leaf.values.Len() != keys.Len() {
			return 0, 0, violation("leaf has %d keys but %d values", keys.Len(), leaf.values.Len())
		}
		*leaves = append(*leaves, leaf)
		return keys.Len(), 1, nil
	}
	inner := n.(*innerNode[K, V])
	if inner.children.Len() != keys.Len() {
		return 0, 0, violation("branch has %d keys but %d children", keys.Len(), inner.children.Len())
	}
	var total, childHeight int
	for i, child := range inner.children.All() {
		if child.header().parent != inner {
			return 0, 0, violation("child %d does not link back to its parent", i)
		}
		lo, ok := nodeKeys(child).Front()
		if !ok || t.cmp(lo, keys.At(i)) != 0 {
			return 0, 0, violation("separator %v at position %d is not the child minimum", keys.At(i), i)
		}
		if i > 0 {
			prevMax, _ := t.maxKey(inner.children.At(i - 1))
			if t.cmp(prevMax, lo) >= 0 {
				return 0, 0, violation("overlapping children at position %d", i)
			}
		}
		cEntries, cHeight, cErr := t.checkNode(child, false, leaves)
		if cErr != nil {
			return 0, 0, cErr
		}
		total += cEntries
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return 0, 0, violation("non-uniform subtree heights")
		}
	}
	return total, childHeight + 1, nil
}
