package watch

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/guiguan/caster"
	"github.com/npillmayer/bptree"
)

// ErrClosed is returned when subscribing to a closed Broadcaster.
var ErrClosed = errors.New("watch: broadcaster closed")

// SubscriberBuffer is the channel capacity of each subscription.
const SubscriberBuffer = 64

// Broadcaster fans out tree events. It implements bptree.EventListener.
type Broadcaster struct {
	cast   *caster.Caster
	ctx    context.Context
	closed atomic.Bool
}

var _ bptree.EventListener = (*Broadcaster)(nil)

// New creates a broadcaster. It closes itself when ctx is done; a nil ctx
// keeps it open until Close is called.
func New(ctx context.Context) *Broadcaster {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Broadcaster{cast: caster.New(ctx), ctx: ctx}
}

func (b *Broadcaster) isClosed() bool {
	return b.closed.Load() || b.ctx.Err() != nil
}

// TreeEvent publishes e to all current subscribers.
func (b *Broadcaster) TreeEvent(e bptree.Event) {
	if !b.cast.Pub(e) {
		tracer().Debugf("watch: dropped %s event, broadcaster closed", e.Kind)
	}
}

// Subscribe returns a channel receiving all events published from now on.
// The channel is closed when ctx is done or the broadcaster is closed.
// A nil ctx subscribes until the broadcaster is closed.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan bptree.Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b.isClosed() {
		return nil, ErrClosed
	}
	sub, ok := b.cast.Sub(ctx, SubscriberBuffer)
	if !ok {
		return nil, ErrClosed
	}
	events := make(chan bptree.Event, SubscriberBuffer)
	go func() {
		defer close(events)
		defer b.cast.Unsub(sub)
		for {
			select {
			case msg, ok := <-sub:
				if !ok {
					return
				}
				if e, ok := msg.(bptree.Event); ok {
					select {
					case events <- e:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Close stops the broadcaster and closes all subscriptions.
func (b *Broadcaster) Close() {
	b.closed.Store(true)
	b.cast.Close()
}
