package bptree

import "github.com/npillmayer/bptree/ring"

// removeAt deletes the entry at position i of leaf. An emptied leaf is
// detached from the tree, otherwise a new minimum is propagated upwards.
func (t *Tree[K, V]) removeAt(leaf *leafNode[K, V], i int) (K, V) {
	k := must1(leaf.keys.Remove(i))
	v := must1(leaf.values.Remove(i))
	t.size.Add(-1)
	if leaf.isEmpty() {
		t.rebalanceLeaf(leaf)
	} else if i == 0 {
		first, _ := leaf.keys.Front()
		t.updateMinKey(leaf, first)
	}
	return k, v
}

// splitLeaf moves the upper half of a full leaf into a new sibling, splices
// the sibling into the leaf chain and registers it with the parent.
func (t *Tree[K, V]) splitLeaf(leaf *leafNode[K, V]) {
	t.ensureParent(leaf)
	sibling := &leafNode[K, V]{
		keys:   mustSplit(leaf.keys),
		values: mustSplit(leaf.values),
		prev:   leaf,
		next:   leaf.next,
	}
	if leaf.next != nil {
		leaf.next.prev = sibling
	}
	leaf.next = sibling
	if t.tail == leaf {
		t.tail = sibling
	}
	first, _ := sibling.keys.Front()
	tracer().Debugf("bptree: leaf split at %v, %d + %d entries",
		first, leaf.keys.Len(), sibling.keys.Len())
	t.emit(Event{Kind: LeafSplit, Entries: sibling.keys.Len()})
	t.addChild(leaf.parent, sibling, first)
}

// rebalanceLeaf detaches an emptied leaf. A root leaf stays in place.
func (t *Tree[K, V]) rebalanceLeaf(leaf *leafNode[K, V]) {
	assert(leaf.isEmpty(), "rebalance of non-empty leaf")
	p := leaf.parent
	if p == nil {
		return
	}
	if leaf.prev != nil {
		leaf.prev.next = leaf.next
	}
	if leaf.next != nil {
		leaf.next.prev = leaf.prev
	}
	if t.recent == leaf {
		t.recent = nil
	}
	if t.tail == leaf {
		t.tail = leaf.prev
	}
	tracer().Debugf("bptree: leaf collapsed")
	t.emit(Event{Kind: LeafCollapsed})
	t.removeChild(p, leaf)
	leaf.parent, leaf.prev, leaf.next = nil, nil, nil
}

func mustSplit[T any](r *ring.Ring[T]) *ring.Ring[T] {
	return must1(r.Split())
}
