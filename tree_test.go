package bptree

import (
	"cmp"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const maxN = 30 * 1000

// sequentialTree holds keys 0 … maxN-1 with values 2*key. Keys 1 … maxN-1
// are added in ascending order, 0 is added last.
func sequentialTree(t *testing.T, cfg Config) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < maxN; i++ {
		if err := tree.Add(i, 2*i); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if err := tree.Add(0, 0); err != nil {
		t.Fatalf("add 0: %v", err)
	}
	return tree
}

func mustCheck(t *testing.T, tree *Tree[int, int]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invariants violated: %v", err)
	}
}

func expectValue(t *testing.T, tree *Tree[int, int], key, value int) {
	t.Helper()
	v, ok, err := tree.Find(key)
	if err != nil || !ok || v != value {
		t.Fatalf("find %d: expected %d, got %d (found=%v, err=%v)", key, value, v, ok, err)
	}
}

func expectAbsent(t *testing.T, tree *Tree[int, int], key int) {
	t.Helper()
	if v, ok, err := tree.Find(key); err != nil || ok {
		t.Fatalf("find %d: expected absence, got %d (found=%v, err=%v)", key, v, ok, err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	for _, c := range []int{-1, 1, 2} {
		if _, err := New[int, int](Config{Capacity: c}); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("capacity %d: expected ErrInvalidConfig, got %v", c, err)
		}
	}
	if _, err := NewWithCompare[int, int](nil, Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for missing comparison, got %v", err)
	}
}

func TestNewUsesDefaultCapacity(t *testing.T) {
	tree, err := New[string, int](Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.cfg.Capacity != DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", DefaultCapacity, tree.cfg.Capacity)
	}
	if !tree.CacheEnabled() {
		t.Errorf("expected cache to be enabled by default")
	}
}

func TestEmptyTree(t *testing.T) {
	tree, err := New[int, int](Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustCheck(t, tree)
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Height() != 1 {
		t.Fatalf("unexpected empty tree state len=%d height=%d", tree.Len(), tree.Height())
	}
	if _, ok := tree.PeekKey(); ok {
		t.Errorf("expected no minimum key")
	}
	if _, ok := tree.PeekLastValue(); ok {
		t.Errorf("expected no maximum value")
	}
	if _, _, ok := tree.Pop(); ok {
		t.Errorf("expected Pop on empty tree to signal emptiness")
	}
	if _, _, ok := tree.PopBack(); ok {
		t.Errorf("expected PopBack on empty tree to signal emptiness")
	}
	if tree.Last() != nil {
		t.Errorf("expected no iterator for empty tree")
	}
	if d := tree.RecentDepth(); d != -1 {
		t.Errorf("expected no cached leaf, depth is %d", d)
	}
	if err := tree.RemoveFrom(0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	mustCheck(t, tree)
}

func TestFindSequential(t *testing.T) {
	tree := sequentialTree(t, Config{})
	mustCheck(t, tree)
	if tree.IsEmpty() || tree.Len() != maxN {
		t.Fatalf("expected %d entries, have %d", maxN, tree.Len())
	}
	for i := range maxN {
		expectValue(t, tree, i, 2*i)
	}
	expectAbsent(t, tree, -1)
	expectAbsent(t, tree, maxN)
	if h := tree.Height(); h != 3 {
		t.Errorf("expected height 3, have %d", h)
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	tree := sequentialTree(t, Config{})
	err := tree.Add(0, 1)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	expectValue(t, tree, 0, 0)
	if tree.Len() != maxN {
		t.Errorf("duplicate changed entry count to %d", tree.Len())
	}
	mustCheck(t, tree)
}

func TestNilKeysAndValues(t *testing.T) {
	byValue := func(a, b *int) int { return cmp.Compare(*a, *b) }
	tree, err := NewWithCompare[*int, *string](byValue, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k, v := 7, "seven"
	if err := tree.Add(nil, &v); !errors.Is(err, ErrNilKey) {
		t.Errorf("expected ErrNilKey, got %v", err)
	}
	if err := tree.Add(&k, nil); !errors.Is(err, ErrNilValue) {
		t.Errorf("expected ErrNilValue, got %v", err)
	}
	if _, _, err := tree.Find(nil); !errors.Is(err, ErrNilKey) {
		t.Errorf("expected ErrNilKey, got %v", err)
	}
	if err := tree.Remove(nil); !errors.Is(err, ErrNilKey) {
		t.Errorf("expected ErrNilKey, got %v", err)
	}
	if err := tree.RemoveFrom(nil); !errors.Is(err, ErrNilKey) {
		t.Errorf("expected ErrNilKey, got %v", err)
	}
	if !tree.IsEmpty() {
		t.Fatalf("rejected operations modified the tree")
	}
	if err := tree.Add(&k, &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	probe := 7
	if got, ok, _ := tree.Find(&probe); !ok || *got != "seven" {
		t.Errorf("expected to find value for key 7")
	}
}

func TestRemoveEvenKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree")
	defer teardown()
	//
	tree := sequentialTree(t, Config{})
	if err := tree.Remove(-1); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	for i := 0; i < maxN; i += 2 {
		expectValue(t, tree, i, 2*i)
		if err := tree.Remove(i); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
		expectAbsent(t, tree, i)
	}
	if err := tree.Remove(2); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	for i := 1; i < maxN; i += 2 {
		expectValue(t, tree, i, 2*i)
	}
	if tree.Len() != maxN/2 {
		t.Errorf("expected %d entries, have %d", maxN/2, tree.Len())
	}
	mustCheck(t, tree)
}

func TestRemoveInnerRange(t *testing.T) {
	tree := sequentialTree(t, Config{})
	for i := maxN / 30; i < maxN*29/30; i += 2 {
		expectValue(t, tree, i, 2*i)
		if err := tree.Remove(i); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
		expectAbsent(t, tree, i)
	}
	for i := 0; i < maxN/30; i++ {
		expectValue(t, tree, i, 2*i)
	}
	for i := maxN * 29 / 30; i < maxN; i++ {
		expectValue(t, tree, i, 2*i)
	}
	mustCheck(t, tree)
}

func TestAddRemoveAlternately(t *testing.T) {
	const forward, backward = 10, 2
	tree := sequentialTree(t, Config{})
	for i := 0; i < maxN; i += forward - backward {
		for j := i; j < min(i+forward, maxN); j++ {
			expectValue(t, tree, j, 2*j)
			if err := tree.Remove(j); err != nil {
				t.Fatalf("remove %d: %v", j, err)
			}
			expectAbsent(t, tree, j)
		}
		for j := 1; j <= backward; j++ {
			k := i + forward - j
			if err := tree.Add(k, 2*k); err != nil {
				t.Fatalf("add %d: %v", k, err)
			}
			expectValue(t, tree, k, 2*k)
		}
	}
	mustCheck(t, tree)
}

func TestRemoveAndAddHalfRepeatedly(t *testing.T) {
	tree := sequentialTree(t, Config{})
	for n := maxN; n > 1; {
		if err := tree.Remove(-1); !errors.Is(err, ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
		for i := range n {
			expectValue(t, tree, i, 2*i)
			if err := tree.Remove(i); err != nil {
				t.Fatalf("remove %d: %v", i, err)
			}
			expectAbsent(t, tree, i)
		}
		if !tree.IsEmpty() || tree.Height() != 1 {
			t.Fatalf("expected tree to be reset to an empty leaf")
		}
		if err := tree.Remove(0); !errors.Is(err, ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
		n /= 2
		for i := range n {
			if err := tree.Add(i, 2*i); err != nil {
				t.Fatalf("add %d: %v", i, err)
			}
			expectValue(t, tree, i, 2*i)
		}
		if err := tree.Add(0, 0); n > 0 && !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("expected ErrDuplicateKey, got %v", err)
		}
		mustCheck(t, tree)
	}
}

func TestRemoveFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bptree")
	defer teardown()
	tracing.Select("bptree").SetTraceLevel(tracing.LevelInfo)
	//
	for _, cacheDisabled := range []bool{false, true} {
		for _, threshold := range []int{maxN / 2, 0, -1, maxN, maxN - 1, 1, 64} {
			tree := sequentialTree(t, Config{CacheDisabled: cacheDisabled})
			if err := tree.RemoveFrom(threshold); err != nil {
				t.Fatalf("remove from %d: %v", threshold, err)
			}
			mustCheck(t, tree)
			kept := min(max(threshold, 0), maxN)
			if tree.Len() != kept {
				t.Errorf("remove from %d: expected %d entries, have %d", threshold, kept, tree.Len())
			}
			for i := range maxN {
				if i < threshold {
					expectValue(t, tree, i, 2*i)
				} else {
					expectAbsent(t, tree, i)
				}
			}
			last, ok := tree.PeekLastKey()
			if kept == 0 {
				if ok || !tree.IsEmpty() {
					t.Errorf("remove from %d: expected empty tree", threshold)
				}
			} else if !ok || last != kept-1 {
				t.Errorf("remove from %d: expected maximum %d, have %d", threshold, kept-1, last)
			}
			if kept > 0 {
				if first, ok := tree.PeekKey(); !ok || first != 0 {
					t.Errorf("remove from %d: expected minimum 0, have %d", threshold, first)
				}
				if v, ok := tree.PeekValue(); !ok || v != 0 {
					t.Errorf("remove from %d: expected first value 0, have %d", threshold, v)
				}
			}
		}
	}
}

func TestRemoveFromThenAdd(t *testing.T) {
	tree := sequentialTree(t, Config{})
	if err := tree.RemoveFrom(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.Add(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectValue(t, tree, 0, 0)
	mustCheck(t, tree)
}

func TestRemoveFromKeepsLeafChain(t *testing.T) {
	tree := sequentialTree(t, Config{Capacity: 4})
	for _, threshold := range []int{20000, 12345, 777, 3} {
		if err := tree.RemoveFrom(threshold); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mustCheck(t, tree)
		if err := tree.Add(threshold+5, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if k, _ := tree.PeekLastKey(); k != threshold+5 {
			t.Fatalf("expected maximum %d, have %d", threshold+5, k)
		}
		if err := tree.Remove(threshold + 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mustCheck(t, tree)
	}
}

func TestPeekAndPop(t *testing.T) {
	tree := sequentialTree(t, Config{})
	for i := range maxN {
		if k, ok := tree.PeekKey(); !ok || k != i {
			t.Fatalf("expected minimum %d, have %d", i, k)
		}
		if v, ok := tree.PeekValue(); !ok || v != 2*i {
			t.Fatalf("expected minimum value %d, have %d", 2*i, v)
		}
		k, v, ok := tree.Pop()
		if !ok || k != i || v != 2*i {
			t.Fatalf("pop: expected (%d, %d), have (%d, %d)", i, 2*i, k, v)
		}
	}
	if !tree.IsEmpty() {
		t.Fatalf("expected tree to be empty after popping all entries")
	}
	if _, _, ok := tree.Pop(); ok {
		t.Fatalf("expected Pop on empty tree to signal emptiness")
	}
	mustCheck(t, tree)
}

func TestPeekLastAndPopBack(t *testing.T) {
	tree := sequentialTree(t, Config{Capacity: 7})
	for i := maxN - 1; i >= 0; i-- {
		if k, ok := tree.PeekLastKey(); !ok || k != i {
			t.Fatalf("expected maximum %d, have %d", i, k)
		}
		if v, ok := tree.PeekLastValue(); !ok || v != 2*i {
			t.Fatalf("expected maximum value %d, have %d", 2*i, v)
		}
		k, v, ok := tree.PopBack()
		if !ok || k != i || v != 2*i {
			t.Fatalf("pop back: expected (%d, %d), have (%d, %d)", i, 2*i, k, v)
		}
		if i%1000 == 0 {
			mustCheck(t, tree)
		}
	}
	if _, _, ok := tree.PopBack(); ok {
		t.Fatalf("expected PopBack on empty tree to signal emptiness")
	}
}

func TestRecentDepth(t *testing.T) {
	tree := sequentialTree(t, Config{})
	if d := tree.RecentDepth(); d != 3 {
		t.Errorf("expected cached leaf at depth 3, have %d", d)
	}
	empty, _ := New[int, int](Config{})
	if d := empty.RecentDepth(); d != -1 {
		t.Errorf("expected -1 for tree without cached leaf, have %d", d)
	}
}

func TestBackwardIterator(t *testing.T) {
	tree := sequentialTree(t, Config{})
	it := tree.Last()
	for i := maxN - 1; i > 0; i-- {
		if it.Key() != i || it.Value() != 2*i {
			t.Fatalf("expected (%d, %d), have (%d, %d)", i, 2*i, it.Key(), it.Value())
		}
		if !it.HasNext() || !it.Next() {
			t.Fatalf("iterator ended early at %d", i)
		}
	}
	if it.Key() != 0 || it.Value() != 0 {
		t.Fatalf("expected (0, 0), have (%d, %d)", it.Key(), it.Value())
	}
	if it.HasNext() || it.Next() {
		t.Fatalf("expected iterator to end at minimum")
	}
	if it.Key() != 0 {
		t.Fatalf("iterator moved past the minimum")
	}
}

func TestCloneAndEqual(t *testing.T) {
	same := func(a, b int) bool { return a == b }
	tree := sequentialTree(t, Config{})
	empty, _ := New[int, int](Config{})
	if tree.Equal(empty, same) || !tree.Equal(tree, same) || tree.Equal(nil, same) {
		t.Fatalf("unexpected equality results")
	}
	clone := tree.Clone()
	if clone == tree || !tree.Equal(clone, same) {
		t.Fatalf("expected clone to be a distinct, equal tree")
	}
	if clone.Stats() != tree.Stats() || clone.RecentDepth() != tree.RecentDepth() {
		t.Errorf("expected clone to carry counters and cache")
	}
	mustCheck(t, clone)
	if err := clone.Add(-1, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectAbsent(t, tree, -1)
	if tree.Equal(clone, same) {
		t.Fatalf("expected trees to differ after mutating the clone")
	}
	if err := clone.Remove(-1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.Equal(clone, same) {
		t.Fatalf("expected trees to be equal again")
	}
	_ = tree.Add(-1, -1)
	_ = clone.Add(-1, -1)
	if !tree.Equal(clone, same) {
		t.Fatalf("expected trees to be equal after identical additions")
	}
	if err := clone.RemoveFrom(100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustCheck(t, tree)
	mustCheck(t, clone)
	if tree.Len() != maxN+1 {
		t.Fatalf("trimming the clone changed the original")
	}
}
