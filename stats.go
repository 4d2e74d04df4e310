package bptree

import "github.com/cockroachdb/redact"

// Stats is a snapshot of the tree's counters.
type Stats struct {
	Len    int    // number of entries
	Hits   uint64 // keyed operations which started at the cached leaf's parent
	Misses uint64 // keyed operations which descended from the root
}

// Stats returns the current counters. It is safe to call while another
// goroutine mutates the tree.
func (t *Tree[K, V]) Stats() Stats {
	return Stats{
		Len:    t.Len(),
		Hits:   t.hits.Load(),
		Misses: t.misses.Load(),
	}
}

// SafeFormat implements redact.SafeFormatter.
func (s Stats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("len=%d hits=%d misses=%d",
		redact.Safe(s.Len), redact.Safe(s.Hits), redact.Safe(s.Misses))
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return redact.StringWithoutMarkers(s)
}
