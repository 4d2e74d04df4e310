/*
Package bptree implements an in-memory B+ tree with a locality cache.

A Tree maps unique, totally ordered keys to values. Nodes store their keys,
values and child links in fixed-capacity circular buffers (package ring);
a node splits the moment its buffer fills up, so at rest every node holds
fewer than Config.Capacity entries. Leaves are threaded into a doubly linked
chain in ascending key order, which gives O(1) access to the maximum and
cheap ordered traversal in both directions.

# Locality cache

The tree remembers the leaf touched by the most recent keyed operation.
When the next key falls into the range of that leaf's parent, the descent
starts there instead of at the root. Stats reports how often this
succeeded (hits) and how often a full descent was necessary (misses).
The cache is purely an accelerator: contents and results never depend on
it, and it can be turned off with Config.CacheDisabled.

# Removal

Nodes are never merged or rebalanced by borrowing. A node is removed from
the tree only when it becomes completely empty; emptied parents collapse
recursively. RemoveFrom drops the suffix of all keys >= a threshold,
discarding whole subtrees at once and starting from the tail leaf.

# Concurrency

A Tree is not synchronized. Callers serialize all operations; only Stats
may be read from another goroutine.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package bptree

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(errors.AssertionFailedf("bptree: %s", msg))
	}
}

// must panics if a ring operation inside the tree failed. Ring operations
// are only called with positions and fill levels the tree has checked.
func must(err error) {
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "bptree: ring operation"))
	}
}

func must1[T any](v T, err error) T {
	must(err)
	return v
}
