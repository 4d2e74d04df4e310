package bptree

// EventKind classifies structural changes of a tree.
type EventKind uint8

const (
	_ EventKind = iota
	// LeafSplit: a full leaf moved its upper half into a new sibling.
	LeafSplit
	// BranchSplit: a full inner node moved its upper half into a new sibling.
	BranchSplit
	// LeafCollapsed: an emptied leaf was unlinked and removed from its parent.
	LeafCollapsed
	// BranchCollapsed: an emptied inner node was removed from its parent.
	BranchCollapsed
	// RootGrown: a split propagated above the root; the tree is one level higher.
	RootGrown
	// RootReset: the tree became empty and its root was replaced by an empty leaf.
	RootReset
	// RangeTrimmed: RemoveFrom removed a suffix of entries.
	RangeTrimmed
)

var eventKindNames = [...]string{
	"invalid", "leaf-split", "branch-split", "leaf-collapsed",
	"branch-collapsed", "root-grown", "root-reset", "range-trimmed",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "invalid"
}

// Event describes a structural change.
//
// Entries is the number of entries moved to a new sibling (splits) or removed
// (RangeTrimmed); Height is the tree height after RootGrown.
type Event struct {
	Kind    EventKind
	Entries int
	Height  int
}

// EventListener receives structural events. TreeEvent is called on the
// goroutine mutating the tree, in the middle of the operation, and must not
// call back into the tree.
type EventListener interface {
	TreeEvent(Event)
}

// EventListenerFunc adapts a function to EventListener.
type EventListenerFunc func(Event)

// TreeEvent calls f(e).
func (f EventListenerFunc) TreeEvent(e Event) { f(e) }

func (t *Tree[K, V]) emit(e Event) {
	if t.cfg.Listener != nil {
		t.cfg.Listener.TreeEvent(e)
	}
}

// Listeners combines several listeners into one, calling them in order.
// Nil listeners are skipped.
func Listeners(ls ...EventListener) EventListener {
	var all []EventListener
	for _, l := range ls {
		if l != nil {
			all = append(all, l)
		}
	}
	return EventListenerFunc(func(e Event) {
		for _, l := range all {
			l.TreeEvent(e)
		}
	})
}
