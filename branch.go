package bptree

import "github.com/cockroachdb/errors"

// ensureParent gives a parentless node (the root) a new parent holding it
// as its only child.
func (t *Tree[K, V]) ensureParent(n treeNode[K, V]) {
	h := n.header()
	if h.parent != nil {
		return
	}
	first, ok := nodeKeys(n).Front()
	assert(ok, "new parent for empty node")
	p := t.makeInner()
	must(p.keys.PushBack(first))
	must(p.children.PushBack(n))
	p.setLow(first)
	h.parent = p
	h.setLow(first)
}

// addChild registers child under key with p and splits p if it filled up.
func (t *Tree[K, V]) addChild(p *innerNode[K, V], child treeNode[K, V], key K) {
	i, found := t.searchLeftmost(p.keys, key)
	if found {
		panic(errors.NewAssertionErrorWithWrappedErrf(ErrDuplicateKey, "bptree: separator %v", key))
	}
	must(p.keys.Insert(i, key))
	must(p.children.Insert(i, child))
	h := child.header()
	h.parent = p
	h.setLow(key)
	if i == 0 {
		t.updateMinKey(p, key)
	}
	if fullyOccupied[K, V](p) {
		t.splitInner(p)
	}
}

// splitInner moves the upper half of a full inner node into a new sibling,
// reparents the moved children and registers the sibling with the parent.
func (t *Tree[K, V]) splitInner(n *innerNode[K, V]) {
	t.ensureParent(n)
	sibling := &innerNode[K, V]{
		keys:     mustSplit(n.keys),
		children: mustSplit(n.children),
	}
	for _, c := range sibling.children.All() {
		c.header().parent = sibling
	}
	first, _ := sibling.keys.Front()
	tracer().Debugf("bptree: branch split at %v, %d + %d children",
		first, n.children.Len(), sibling.children.Len())
	t.emit(Event{Kind: BranchSplit, Entries: sibling.children.Len()})
	t.addChild(n.parent, sibling, first)
}

// removeChild deletes child from p. An emptied p is detached in turn,
// otherwise a new minimum is propagated upwards.
func (t *Tree[K, V]) removeChild(p *innerNode[K, V], child treeNode[K, V]) {
	i := t.childIndex(p, child)
	must1(p.keys.Remove(i))
	must1(p.children.Remove(i))
	if p.isEmpty() {
		t.rebalanceInner(p)
		return
	}
	if i == 0 {
		first, _ := p.keys.Front()
		t.updateMinKey(p, first)
	}
}

// rebalanceInner detaches an emptied inner node. An emptied root is left to
// settleRoot.
func (t *Tree[K, V]) rebalanceInner(n *innerNode[K, V]) {
	p := n.parent
	if p == nil {
		return
	}
	tracer().Debugf("bptree: branch collapsed")
	t.emit(Event{Kind: BranchCollapsed})
	t.removeChild(p, n)
	n.parent = nil
}

// updateMinKey records key as the new minimum of n's subtree. The key under
// which the parent registers n is rewritten; if n is the parent's first
// child, the parent's minimum changed as well and the update continues
// upwards.
func (t *Tree[K, V]) updateMinKey(n treeNode[K, V], key K) {
	for {
		h := n.header()
		p := h.parent
		if p == nil {
			h.setLow(key)
			return
		}
		i := t.childIndex(p, n)
		must(p.keys.Set(i, key))
		h.setLow(key)
		if i != 0 {
			return
		}
		n = p
	}
}

// childIndex finds the position of child within p. The lookup goes by the
// child's left range key, which must be consulted before it is changed.
func (t *Tree[K, V]) childIndex(p *innerNode[K, V], child treeNode[K, V]) int {
	if h := child.header(); h.hasLow {
		if i, found := t.searchRightmost(p.keys, h.low); found && p.children.At(i) == child {
			return i
		}
	}
	for i, c := range p.children.All() {
		if c == child {
			return i
		}
	}
	panic(errors.AssertionFailedf("bptree: node is not a child of its parent"))
}

// --- Suffix removal ---------------------------------------------------------

// trimStart finds the node a suffix removal starts at: the lowest node on
// the right spine whose left range key is <= threshold. It returns nil if
// threshold is above the maximum key.
func (t *Tree[K, V]) trimStart(threshold K) treeNode[K, V] {
	last, ok := t.tail.keys.Back()
	if !ok || t.cmp(threshold, last) > 0 {
		return nil
	}
	if t.cfg.CacheDisabled {
		return t.root
	}
	var n treeNode[K, V] = t.tail
	for {
		h := n.header()
		if h.parent == nil || (h.hasLow && t.cmp(h.low, threshold) <= 0) {
			return n
		}
		n = h.parent
	}
}

// removeFromNode deletes all keys >= threshold below n and returns the
// number of entries removed. Children entirely above threshold are dropped
// as a whole; only the boundary child is descended into.
func (t *Tree[K, V]) removeFromNode(n treeNode[K, V], threshold K) int {
	if n.isLeaf() {
		leaf := n.(*leafNode[K, V])
		i, _ := t.searchLeftmost(leaf.keys, threshold)
		removed := leaf.keys.Len() - i
		leaf.keys.RemoveFrom(i)
		leaf.values.RemoveFrom(i)
		if leaf.isEmpty() {
			t.rebalanceLeaf(leaf)
		}
		return removed
	}
	inner := n.(*innerNode[K, V])
	i, found := t.searchRightmost(inner.keys, threshold)
	cut := i + 1
	if found || i < 0 {
		cut = max(i, 0)
	}
	var boundary treeNode[K, V]
	if cut > 0 && !found {
		boundary = inner.children.At(i)
	}
	removed := 0
	for j := cut; j < inner.children.Len(); j++ {
		removed += countEntries(inner.children.At(j))
	}
	inner.keys.RemoveFrom(cut)
	inner.children.RemoveFrom(cut)
	if boundary != nil {
		// inner keeps boundary; an emptied boundary cascades up by itself
		return removed + t.removeFromNode(boundary, threshold)
	}
	if inner.isEmpty() {
		t.rebalanceInner(inner)
	}
	return removed
}

func countEntries[K, V any](n treeNode[K, V]) int {
	if n.isLeaf() {
		return n.(*leafNode[K, V]).keys.Len()
	}
	cnt := 0
	for _, c := range n.(*innerNode[K, V]).children.All() {
		cnt += countEntries(c)
	}
	return cnt
}
