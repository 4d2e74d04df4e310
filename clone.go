package bptree

// Clone returns a deep copy of the structure of t: nodes, leaf chain, cache
// and counters are copied, keys and values are copied by assignment. The
// configuration, including the listener, is shared.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{
		cfg:    t.cfg,
		cmp:    t.cmp,
		keyNil: t.keyNil,
		valNil: t.valNil,
	}
	clones := make(map[treeNode[K, V]]treeNode[K, V])
	c.root = t.cloneNode(t.root, nil, clones)
	for orig, cl := range clones {
		if leaf, ok := orig.(*leafNode[K, V]); ok {
			cleaf := cl.(*leafNode[K, V])
			cleaf.prev = clonedLeaf(clones, leaf.prev)
			cleaf.next = clonedLeaf(clones, leaf.next)
		}
	}
	c.tail = clonedLeaf(clones, t.tail)
	c.recent = clonedLeaf(clones, t.recent)
	c.hits.Store(t.hits.Load())
	c.misses.Store(t.misses.Load())
	c.size.Store(t.size.Load())
	return c
}

// cloneNode copies the subtree of n, visiting every node exactly once.
func (t *Tree[K, V]) cloneNode(n treeNode[K, V], parent *innerNode[K, V],
	clones map[treeNode[K, V]]treeNode[K, V]) treeNode[K, V] {
	//
	if cl, ok := clones[n]; ok {
		return cl
	}
	h := *n.header()
	h.parent = parent
	switch n := n.(type) {
	case *leafNode[K, V]:
		cl := &leafNode[K, V]{
			nodeHeader: h,
			keys:       n.keys.Clone(),
			values:     n.values.Clone(),
		}
		clones[n] = cl
		return cl
	case *innerNode[K, V]:
		cl := &innerNode[K, V]{nodeHeader: h, keys: n.keys.Clone()}
		cl.children = n.children.Clone()
		clones[n] = cl
		for i, child := range n.children.All() {
			must(cl.children.Set(i, t.cloneNode(child, cl, clones)))
		}
		return cl
	}
	panic("bptree: unknown node type")
}

func clonedLeaf[K, V any](clones map[treeNode[K, V]]treeNode[K, V], leaf *leafNode[K, V]) *leafNode[K, V] {
	if leaf == nil {
		return nil
	}
	cl, ok := clones[leaf]
	if !ok {
		return nil
	}
	return cl.(*leafNode[K, V])
}

// Equal reports whether t and other hold the same keys, in the sense of t's
// key order, associated with values for which eq returns true.
func (t *Tree[K, V]) Equal(other *Tree[K, V], eq func(a, b V) bool) bool {
	if other == nil || t.Len() != other.Len() {
		return false
	}
	a, b := t.Last(), other.Last()
	for a != nil && b != nil {
		if t.cmp(a.Key(), b.Key()) != 0 || !eq(a.Value(), b.Value()) {
			return false
		}
		an, bn := a.Next(), b.Next()
		if an != bn {
			return false
		}
		if !an {
			return true
		}
	}
	return a == nil && b == nil
}
