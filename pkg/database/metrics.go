package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// PoolStats is the subset of pgxpool statistics exported as metrics.
type PoolStats struct {
	Acquired     int32
	Idle         int32
	Total        int32
	Max          int32
	AcquireCount int64
	EmptyAcquire int64
}

// StatsFromPool returns a snapshot function over a live pool.
func StatsFromPool(pool *pgxpool.Pool) func() PoolStats {
	return func() PoolStats {
		s := pool.Stat()
		return PoolStats{
			Acquired:     s.AcquiredConns(),
			Idle:         s.IdleConns(),
			Total:        s.TotalConns(),
			Max:          s.MaxConns(),
			AcquireCount: s.AcquireCount(),
			EmptyAcquire: s.EmptyAcquireCount(),
		}
	}
}

type poolMetric struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	value     func(PoolStats) float64
}

// PoolStatsCollector implements prometheus.Collector over pool snapshots.
type PoolStatsCollector struct {
	stats   func() PoolStats
	metrics []poolMetric
}

// NewPoolStatsCollector creates a collector reading stats on every scrape.
func NewPoolStatsCollector(stats func() PoolStats) *PoolStatsCollector {
	gauge := func(name, help string, v func(PoolStats) float64) poolMetric {
		return poolMetric{prometheus.NewDesc(name, help, nil, nil), prometheus.GaugeValue, v}
	}
	counter := func(name, help string, v func(PoolStats) float64) poolMetric {
		return poolMetric{prometheus.NewDesc(name, help, nil, nil), prometheus.CounterValue, v}
	}

	return &PoolStatsCollector{
		stats: stats,
		metrics: []poolMetric{
			gauge("storefront_db_pool_acquired_connections", "Connections currently in use.",
				func(s PoolStats) float64 { return float64(s.Acquired) }),
			gauge("storefront_db_pool_idle_connections", "Connections currently idle.",
				func(s PoolStats) float64 { return float64(s.Idle) }),
			gauge("storefront_db_pool_total_connections", "Connections open in the pool.",
				func(s PoolStats) float64 { return float64(s.Total) }),
			gauge("storefront_db_pool_max_connections", "Configured pool size.",
				func(s PoolStats) float64 { return float64(s.Max) }),
			counter("storefront_db_pool_acquire_total", "Connection acquires.",
				func(s PoolStats) float64 { return float64(s.AcquireCount) }),
			counter("storefront_db_pool_empty_acquire_total", "Acquires that waited for a connection.",
				func(s PoolStats) float64 { return float64(s.EmptyAcquire) }),
		},
	}
}

// Describe implements prometheus.Collector.
func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector.
func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	for _, m := range c.metrics {
		ch <- prometheus.MustNewConstMetric(m.desc, m.valueType, m.value(s))
	}
}
