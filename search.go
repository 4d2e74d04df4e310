package bptree

import (
	"sort"

	"github.com/npillmayer/bptree/ring"
)

// searchLeftmost returns the position of the first key >= key, and whether
// that key equals key. If all keys are smaller, the position is Len().
func (t *Tree[K, V]) searchLeftmost(keys *ring.Ring[K], key K) (int, bool) {
	n := keys.Len()
	i := sort.Search(n, func(i int) bool {
		return t.cmp(keys.At(i), key) >= 0
	})
	return i, i < n && t.cmp(keys.At(i), key) == 0
}

// searchRightmost returns the position of the last key <= key, and whether
// that key equals key. Within a run of equal keys the last one is chosen.
// If all keys are greater, the position is -1.
func (t *Tree[K, V]) searchRightmost(keys *ring.Ring[K], key K) (int, bool) {
	i := sort.Search(keys.Len(), func(i int) bool {
		return t.cmp(keys.At(i), key) > 0
	}) - 1
	return i, i >= 0 && t.cmp(keys.At(i), key) == 0
}

// route selects the child of n responsible for key. Keys smaller than all
// separators go to the first child.
func (t *Tree[K, V]) route(n *innerNode[K, V], key K) int {
	i, _ := t.searchRightmost(n.keys, key)
	return max(i, 0)
}
