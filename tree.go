package bptree

import (
	"cmp"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/bptree/internal/nilcheck"
)

// Tree is an ordered map from keys K to values V, organized as a B+ tree.
//
// The zero value is not usable; create trees with New or NewWithCompare.
type Tree[K, V any] struct {
	cfg    Config
	cmp    func(a, b K) int
	keyNil nilcheck.Checker[K]
	valNil nilcheck.Checker[V]
	root   treeNode[K, V]
	recent *leafNode[K, V] // leaf touched last, may be nil
	tail   *leafNode[K, V] // leaf holding the maximum key
	hits   atomic.Uint64
	misses atomic.Uint64
	size   atomic.Int64
}

// New creates an empty tree for naturally ordered keys.
func New[K cmp.Ordered, V any](cfg Config) (*Tree[K, V], error) {
	return NewWithCompare[K, V](cmp.Compare[K], cfg)
}

// NewWithCompare creates an empty tree ordering keys by compare, which must
// return a negative number for a < b, zero for a == b and a positive number
// for a > b, and must describe a total order.
func NewWithCompare[K, V any](compare func(a, b K) int, cfg Config) (*Tree[K, V], error) {
	if compare == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "missing key comparison")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[K, V]{
		cfg:    cfg.normalized(),
		cmp:    compare,
		keyNil: nilcheck.For[K](),
		valNil: nilcheck.For[V](),
	}
	t.reset()
	return t, nil
}

// reset installs an empty leaf as root and forgets cache and tail.
func (t *Tree[K, V]) reset() {
	leaf := t.makeLeaf()
	t.root = leaf
	t.tail = leaf
	t.recent = nil
}

// CacheEnabled reports whether keyed operations use the locality cache.
func (t *Tree[K, V]) CacheEnabled() bool {
	return !t.cfg.CacheDisabled
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root.isEmpty()
}

// Len returns the number of entries.
func (t *Tree[K, V]) Len() int {
	return int(t.size.Load())
}

// Height returns the number of levels, 1 for a tree consisting of a single
// leaf (even if that leaf is empty).
func (t *Tree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.isLeaf(); h++ {
		n, _ = n.(*innerNode[K, V]).children.Front()
	}
	return h
}

// RecentDepth returns the level of the cached leaf, counting the root level
// as 1, or -1 if no leaf is cached. A tree with disabled cache never caches
// a leaf.
func (t *Tree[K, V]) RecentDepth() int {
	if t.recent == nil {
		return -1
	}
	d := 1
	for p := t.recent.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// --- Keyed operations -------------------------------------------------------

// Add inserts key with value. It fails with ErrDuplicateKey if key is
// already present, leaving the tree unchanged.
func (t *Tree[K, V]) Add(key K, value V) error {
	if t.keyNil.IsNil(key) {
		return errors.Wrap(ErrNilKey, "add")
	}
	if t.valNil.IsNil(value) {
		return errors.Wrapf(ErrNilValue, "add %v", key)
	}
	leaf := t.descend(t.entry(key), key)
	i, found := t.searchLeftmost(leaf.keys, key)
	if found {
		return errors.Wrapf(ErrDuplicateKey, "add %v", key)
	}
	must(leaf.keys.Insert(i, key))
	must(leaf.values.Insert(i, value))
	t.size.Add(1)
	if i == 0 {
		t.updateMinKey(leaf, key)
	}
	if fullyOccupied[K, V](leaf) {
		t.splitLeaf(leaf)
	}
	t.settleRoot()
	return nil
}

// Remove deletes key and its value. It fails with ErrKeyNotFound if key is
// not present.
func (t *Tree[K, V]) Remove(key K) error {
	if t.keyNil.IsNil(key) {
		return errors.Wrap(ErrNilKey, "remove")
	}
	leaf := t.descend(t.entry(key), key)
	i, found := t.searchLeftmost(leaf.keys, key)
	if !found {
		return errors.Wrapf(ErrKeyNotFound, "remove %v", key)
	}
	t.removeAt(leaf, i)
	t.settleRoot()
	return nil
}

// Find looks up the value for key. The boolean result is false if key is
// not present.
func (t *Tree[K, V]) Find(key K) (V, bool, error) {
	var zero V
	if t.keyNil.IsNil(key) {
		return zero, false, errors.Wrap(ErrNilKey, "find")
	}
	leaf := t.descend(t.entry(key), key)
	if i, found := t.searchLeftmost(leaf.keys, key); found {
		return leaf.values.At(i), true, nil
	}
	return zero, false, nil
}

// RemoveFrom deletes every entry with a key >= threshold. A threshold above
// the maximum key leaves the tree unchanged, a threshold at or below the
// minimum key empties it.
func (t *Tree[K, V]) RemoveFrom(threshold K) error {
	if t.keyNil.IsNil(threshold) {
		return errors.Wrap(ErrNilKey, "remove from")
	}
	start := t.trimStart(threshold)
	if start == nil {
		return nil
	}
	removed := t.removeFromNode(start, threshold)
	t.size.Add(-int64(removed))
	t.settleRoot()
	t.tail = t.lastLeaf()
	t.tail.next = nil
	if t.recent != nil {
		if first, ok := t.recent.keys.Front(); !ok || t.cmp(first, threshold) >= 0 {
			t.recent = nil
		}
	}
	tracer().Debugf("bptree: trimmed %d entries, %d left", removed, t.Len())
	t.emit(Event{Kind: RangeTrimmed, Entries: removed})
	return nil
}

// --- Ends of the key range --------------------------------------------------

// PeekKey returns the minimum key.
func (t *Tree[K, V]) PeekKey() (K, bool) {
	return t.firstLeaf().keys.Front()
}

// PeekValue returns the value of the minimum key.
func (t *Tree[K, V]) PeekValue() (V, bool) {
	return t.firstLeaf().values.Front()
}

// PeekLastKey returns the maximum key.
func (t *Tree[K, V]) PeekLastKey() (K, bool) {
	return t.tail.keys.Back()
}

// PeekLastValue returns the value of the maximum key.
func (t *Tree[K, V]) PeekLastValue() (V, bool) {
	return t.tail.values.Back()
}

// Pop removes and returns the entry with the minimum key. The boolean
// result is false if the tree is empty.
func (t *Tree[K, V]) Pop() (K, V, bool) {
	leaf := t.firstLeaf()
	if leaf.isEmpty() {
		var k K
		var v V
		return k, v, false
	}
	k, v := t.removeAt(leaf, 0)
	t.settleRoot()
	return k, v, true
}

// PopBack removes and returns the entry with the maximum key. The boolean
// result is false if the tree is empty.
func (t *Tree[K, V]) PopBack() (K, V, bool) {
	leaf := t.tail
	if leaf.isEmpty() {
		var k K
		var v V
		return k, v, false
	}
	k, v := t.removeAt(leaf, leaf.keys.Len()-1)
	t.settleRoot()
	return k, v, true
}

// --- Navigation -------------------------------------------------------------

// entry selects the node a keyed operation starts descending from and
// accounts for a cache hit or miss.
func (t *Tree[K, V]) entry(key K) treeNode[K, V] {
	if p := t.recentParent(); p != nil && t.isInRange(p, key) {
		t.hits.Add(1)
		return p
	}
	t.misses.Add(1)
	return t.root
}

func (t *Tree[K, V]) recentParent() *innerNode[K, V] {
	if t.cfg.CacheDisabled || t.recent == nil {
		return nil
	}
	return t.recent.parent
}

// isInRange reports whether key lies between the left range key of n and
// the maximum key stored below n. A node without a left range key accepts
// every key.
func (t *Tree[K, V]) isInRange(n treeNode[K, V], key K) bool {
	h := n.header()
	if !h.hasLow {
		return true
	}
	if t.cmp(h.low, key) > 0 {
		return false
	}
	hi, ok := t.maxKey(n)
	return !ok || t.cmp(key, hi) <= 0
}

// maxKey returns the largest key in the subtree of n.
func (t *Tree[K, V]) maxKey(n treeNode[K, V]) (K, bool) {
	for !n.isLeaf() {
		c, ok := n.(*innerNode[K, V]).children.Back()
		if !ok {
			var zero K
			return zero, false
		}
		n = c
	}
	return n.(*leafNode[K, V]).keys.Back()
}

// descend routes key from n down to a leaf and caches that leaf.
func (t *Tree[K, V]) descend(n treeNode[K, V], key K) *leafNode[K, V] {
	for !n.isLeaf() {
		inner := n.(*innerNode[K, V])
		n = inner.children.At(t.route(inner, key))
	}
	leaf := n.(*leafNode[K, V])
	if !t.cfg.CacheDisabled {
		t.recent = leaf
	}
	return leaf
}

func (t *Tree[K, V]) firstLeaf() *leafNode[K, V] {
	n := t.root
	for !n.isLeaf() {
		n, _ = n.(*innerNode[K, V]).children.Front()
	}
	return n.(*leafNode[K, V])
}

func (t *Tree[K, V]) lastLeaf() *leafNode[K, V] {
	n := t.root
	for !n.isLeaf() {
		n, _ = n.(*innerNode[K, V]).children.Back()
	}
	return n.(*leafNode[K, V])
}

// settleRoot is called at the end of every mutation. It promotes a new root
// created by a split and replaces an emptied inner root by an empty leaf.
func (t *Tree[K, V]) settleRoot() {
	for p := t.root.header().parent; p != nil; p = p.parent {
		t.root = p
		h := t.Height()
		tracer().Debugf("bptree: root grown, height is %d", h)
		t.emit(Event{Kind: RootGrown, Height: h})
	}
	if !t.root.isLeaf() && t.root.isEmpty() {
		tracer().Debugf("bptree: root collapsed, tree is empty")
		t.reset()
		t.emit(Event{Kind: RootReset})
	}
}
