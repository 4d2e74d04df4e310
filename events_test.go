package bptree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type eventLog []Event

func (l *eventLog) TreeEvent(e Event) { *l = append(*l, e) }

func (l *eventLog) take() []Event {
	events := *l
	*l = nil
	return events
}

func TestStructuralEvents(t *testing.T) {
	var log eventLog
	tree, err := New[int, string](Config{Capacity: 3, Listener: &log})
	require.NoError(t, err)
	for k := 1; k <= 3; k++ {
		require.NoError(t, tree.Add(k, "v"))
	}
	steps := []struct {
		name string
		op   func() error
		want []Event
	}{
		{"add 4", func() error { return tree.Add(4, "v") }, []Event{
			{Kind: LeafSplit, Entries: 2},
			{Kind: BranchSplit, Entries: 2},
			{Kind: RootGrown, Height: 3},
		}},
		{"remove 1", func() error { return tree.Remove(1) }, []Event{
			{Kind: LeafCollapsed},
			{Kind: BranchCollapsed},
		}},
		{"remove from 3", func() error { return tree.RemoveFrom(3) }, []Event{
			{Kind: LeafCollapsed},
			{Kind: RangeTrimmed, Entries: 2},
		}},
		{"pop", func() error { tree.Pop(); return nil }, []Event{
			{Kind: LeafCollapsed},
			{Kind: BranchCollapsed},
			{Kind: RootReset},
		}},
	}
	require.Equal(t, []Event{
		{Kind: LeafSplit, Entries: 2},
		{Kind: RootGrown, Height: 2},
	}, log.take())
	for _, step := range steps {
		require.NoError(t, step.op(), step.name)
		if diff := cmp.Diff(step.want, log.take()); diff != "" {
			t.Fatalf("%s: unexpected events (-want +got):\n%s", step.name, diff)
		}
		require.NoError(t, tree.Check(), step.name)
	}
	require.True(t, tree.IsEmpty())
}

func TestListenersFanOut(t *testing.T) {
	var a, b eventLog
	tree, err := New[int, int](Config{Capacity: 3, Listener: Listeners(&a, nil, &b)})
	require.NoError(t, err)
	for k := range 3 {
		require.NoError(t, tree.Add(k, k))
	}
	require.Len(t, a, 2)
	require.Equal(t, a, b)
	require.Equal(t, "leaf-split", a[0].Kind.String())
	require.Equal(t, "invalid", EventKind(200).String())
}
