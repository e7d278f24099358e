// Package promarena exports arena and pool statistics as Prometheus metrics.
package promarena

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	arena "github.com/pavanmanishd/fixedarena"
)

// StatsSource is anything that can report arena statistics. Both
// *arena.Arena and *arena.SafeArena satisfy it; only SafeArena may be
// scraped while other goroutines allocate.
type StatsSource interface {
	Metrics() arena.Stats
}

// Collector reports the statistics of one arena under a constant
// "arena" label.
type Collector struct {
	src StatsSource

	used        *prometheus.Desc
	capacity    *prometheus.Desc
	peak        *prometheus.Desc
	allocations *prometheus.Desc
	utilization *prometheus.Desc
}

// NewCollector returns a collector for src. namespace prefixes every
// metric name; name becomes the value of the "arena" label.
func NewCollector(namespace, name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"arena": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena", metric), help, nil, labels)
	}
	return &Collector{
		src:         src,
		used:        desc("used_bytes", "Bytes currently carved out of the region, padding included."),
		capacity:    desc("capacity_bytes", "Size of the arena region."),
		peak:        desc("peak_bytes", "Highest used length since the arena was created."),
		allocations: desc("allocations", "Tracked allocations since the last reset."),
		utilization: desc("utilization_ratio", "Used bytes divided by capacity."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.used
	ch <- c.capacity
	ch <- c.peak
	ch <- c.allocations
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Metrics()
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(s.Used))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.peak, prometheus.GaugeValue, float64(s.Peak))
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.GaugeValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, s.Utilization)
}

// PoolCollector reports the counters of an arena.Pool.
type PoolCollector struct {
	pool *arena.Pool

	created *prometheus.Desc
	reused  *prometheus.Desc
	idle    *prometheus.Desc
}

// NewPoolCollector returns a collector for p.
func NewPoolCollector(namespace string, p *arena.Pool) *PoolCollector {
	labels := prometheus.Labels{"capacity": strconv.Itoa(p.Stats().Capacity)}
	return &PoolCollector{
		pool:    p,
		created: prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena_pool", "created_total"), "Arenas reserved by the pool.", nil, labels),
		reused:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena_pool", "reused_total"), "Get calls served by an idle arena.", nil, labels),
		idle:    prometheus.NewDesc(prometheus.BuildFQName(namespace, "arena_pool", "idle"), "Arenas waiting to be reused.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.created
	ch <- c.reused
	ch <- c.idle
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stats()
	ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(s.Created))
	ch <- prometheus.MustNewConstMetric(c.reused, prometheus.CounterValue, float64(s.Reused))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle))
}
