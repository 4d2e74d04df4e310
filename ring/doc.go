/*
Package ring implements a fixed-capacity circular buffer.

A Ring holds at most Cap() elements in a backing slice allocated once at
construction. Elements may be pushed and popped at both ends in O(1), and
inserted or removed at an arbitrary position in O(k), where k is the
distance to the nearer end: only the shorter side is shifted.

The one operation beyond a plain deque is Split, which divides a full ring
into two rings of near-equal size, preserving order. Rings are used as node
storage in package bptree, where a node splits exactly when its ring fills
up.

Nil elements (nil pointers, interfaces, maps, channels or functions) are
rejected by all operations that store elements.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package ring

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}
