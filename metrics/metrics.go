// Package metrics exposes a Cache's statistics to Prometheus. The collector
// reads a Statistics snapshot lazily at scrape time instead of maintaining
// its own counters, so it can never drift from the cache's accounting, and
// TTL-driven evictions show up without any hook wiring.
//
// Registration is the caller's choice:
//
//	reg.MustRegister(metrics.NewCollector("files", cache.Statistics))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/tagcache"
)

// Collector reports one cache instance's statistics. All metrics carry a
// "cache" label so multiple instances can share a registry.
type Collector struct {
	src func() tagcache.Statistics

	entries   *prometheus.Desc
	memory    *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector for the cache whose statistics src
// snapshots; name becomes the "cache" label value.
func NewCollector(name string, src func() tagcache.Statistics) *Collector {
	labels := prometheus.Labels{"cache": name}
	return &Collector{
		src: src,
		entries: prometheus.NewDesc("cache_entries",
			"Current number of entries in the cache.", nil, labels),
		memory: prometheus.NewDesc("cache_memory_estimate_bytes",
			"Best-effort byte estimate of values stored in the cache.", nil, labels),
		hits: prometheus.NewDesc("cache_hits_total",
			"Total number of cache hits.", nil, labels),
		misses: prometheus.NewDesc("cache_misses_total",
			"Total number of cache misses.", nil, labels),
		evictions: prometheus.NewDesc("cache_evictions_total",
			"Total number of entries evicted by expiry, sweep or invalidation.", nil, labels),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.memory
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.TotalItems))
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(s.TotalMemoryEstimate))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.HitCount))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.MissCount))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.EvictionCount))
}
