package metrics

import (
	"github.com/npillmayer/bptree"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is implemented by *bptree.Tree for every key and value type.
type StatsSource interface {
	Stats() bptree.Stats
}

// Collector is a prometheus.Collector reporting the counters of one tree.
// Stats are read at scrape time, concurrently with the tree's owner.
type Collector struct {
	src     StatsSource
	entries *prometheus.Desc
	hits    *prometheus.Desc
	misses  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for src. All metrics carry a constant
// label tree=name.
func NewCollector(name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"tree": name}
	return &Collector{
		src: src,
		entries: prometheus.NewDesc("bptree_entries",
			"Number of entries in the tree.", nil, labels),
		hits: prometheus.NewDesc("bptree_cache_hits_total",
			"Keyed operations which started at the parent of the cached leaf.", nil, labels),
		misses: prometheus.NewDesc("bptree_cache_misses_total",
			"Keyed operations which descended from the root.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	tracer().Debugf("metrics: collect %s", s)
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Len))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
}
