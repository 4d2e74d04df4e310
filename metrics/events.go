package metrics

import (
	"github.com/npillmayer/bptree"
	"github.com/prometheus/client_golang/prometheus"
)

// EventCounter counts structural tree events. It implements
// bptree.EventListener; register it with a prometheus.Registerer.
type EventCounter struct {
	events  *prometheus.CounterVec
	trimmed prometheus.Histogram
}

var (
	_ bptree.EventListener  = (*EventCounter)(nil)
	_ prometheus.Collector = (*EventCounter)(nil)
)

// NewEventCounter creates an event counter. All metrics carry a constant
// label tree=name.
func NewEventCounter(name string) *EventCounter {
	labels := prometheus.Labels{"tree": name}
	return &EventCounter{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bptree_events_total",
			Help:        "Structural tree events by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		trimmed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "bptree_trimmed_entries",
			Help:        "Entries removed per suffix removal.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// TreeEvent implements bptree.EventListener.
func (c *EventCounter) TreeEvent(e bptree.Event) {
	c.events.WithLabelValues(e.Kind.String()).Inc()
	if e.Kind == bptree.RangeTrimmed {
		c.trimmed.Observe(float64(e.Entries))
	}
}

// Describe implements prometheus.Collector.
func (c *EventCounter) Describe(ch chan<- *prometheus.Desc) {
	c.events.Describe(ch)
	c.trimmed.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *EventCounter) Collect(ch chan<- prometheus.Metric) {
	c.events.Collect(ch)
	c.trimmed.Collect(ch)
}
