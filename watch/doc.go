/*
Package watch broadcasts structural events of a bptree.Tree to any number of
subscribers.

A Broadcaster is installed as the tree's event listener. Subscribers receive
every event published after they subscribed, in order, on a buffered
channel. Publishing waits for subscribers whose buffer is full, so
subscribers must keep reading or cancel their context.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package watch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bptree'
func tracer() tracing.Trace {
	return tracing.Select("bptree")
}
