/*
Package metrics exports bptree counters to Prometheus.

A Collector reads a tree's Stats at scrape time: the entry count and the
hits and misses of the locality cache. An EventCounter is installed as (one
of) the tree's event listeners and counts structural events by kind, plus a
histogram of entries removed per RemoveFrom.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}
