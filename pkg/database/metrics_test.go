package database

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolStatsCollector(t *testing.T) {
	stats := PoolStats{Acquired: 1, Idle: 2, Total: 3, Max: 4, AcquireCount: 10, EmptyAcquire: 1}
	c := NewPoolStatsCollector(func() PoolStats { return stats })

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	assert.Equal(t, 6, testutil.CollectAndCount(c))

	expected := `
# HELP storefront_db_pool_acquired_connections Connections currently in use.
# TYPE storefront_db_pool_acquired_connections gauge
storefront_db_pool_acquired_connections 1
# HELP storefront_db_pool_acquire_total Connection acquires.
# TYPE storefront_db_pool_acquire_total counter
storefront_db_pool_acquire_total 10
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"storefront_db_pool_acquired_connections", "storefront_db_pool_acquire_total"))

	// Values are read on each scrape.
	stats.Acquired = 4
	assert.Equal(t, 4.0, gatherGauge(t, reg, "storefront_db_pool_acquired_connections"))
}

func gatherGauge(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}
