package bptree

import "github.com/npillmayer/bptree/ring"

// treeNode is implemented by *leafNode and *innerNode.
type treeNode[K, V any] interface {
	isLeaf() bool
	isEmpty() bool
	header() *nodeHeader[K, V]
}

// nodeHeader holds what leaves and inner nodes have in common.
type nodeHeader[K, V any] struct {
	// parent is a navigational back-link; the parent owns the node through
	// its children ring, never the other way round.
	parent *innerNode[K, V]
	// low is the key under which the parent registers this node, i.e. the
	// minimum key routed through it.
	low    K
	hasLow bool
}

func (h *nodeHeader[K, V]) header() *nodeHeader[K, V] { return h }

func (h *nodeHeader[K, V]) setLow(key K) {
	h.low = key
	h.hasLow = true
}

// leafNode holds keys and values at the bottom of the tree. All leaves form
// a doubly linked chain in ascending key order.
type leafNode[K, V any] struct {
	nodeHeader[K, V]
	keys   *ring.Ring[K]
	values *ring.Ring[V]
	prev   *leafNode[K, V]
	next   *leafNode[K, V]
}

func (l *leafNode[K, V]) isLeaf() bool  { return true }
func (l *leafNode[K, V]) isEmpty() bool { return l.keys.IsEmpty() }

// innerNode routes to its children. keys[i] is the minimum key of
// children[i]; keys[0] is the node's left range key, keys[1:] are the
// separators between children.
type innerNode[K, V any] struct {
	nodeHeader[K, V]
	keys     *ring.Ring[K]
	children *ring.Ring[treeNode[K, V]]
}

func (n *innerNode[K, V]) isLeaf() bool  { return false }
func (n *innerNode[K, V]) isEmpty() bool { return n.children.IsEmpty() }

func (t *Tree[K, V]) makeLeaf() *leafNode[K, V] {
	return &leafNode[K, V]{
		keys:   ring.New[K](t.cfg.Capacity),
		values: ring.New[V](t.cfg.Capacity),
	}
}

func (t *Tree[K, V]) makeInner() *innerNode[K, V] {
	return &innerNode[K, V]{
		keys:     ring.New[K](t.cfg.Capacity),
		children: ring.New[treeNode[K, V]](t.cfg.Capacity),
	}
}

// nodeKeys returns the key ring of either node kind.
func nodeKeys[K, V any](n treeNode[K, V]) *ring.Ring[K] {
	if n.isLeaf() {
		return n.(*leafNode[K, V]).keys
	}
	return n.(*innerNode[K, V]).keys
}

// fullyOccupied is the split trigger: a node splits as soon as its key ring
// fills up, so at rest every node holds fewer than Capacity entries.
func fullyOccupied[K, V any](n treeNode[K, V]) bool {
	return nodeKeys(n).IsFull()
}
