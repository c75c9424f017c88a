package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/metrics"
)

func TestCollectors_Count(t *testing.T) {
	c := metrics.New("test")
	c.Dropped(metrics.ReasonUnknownLabel, 3)
	c.Dropped(metrics.ReasonUnknownLabel, 0)
	c.Batch("batched")
	c.Batch("batched")
	c.Exhausted()
	c.Moved(2)

	assert.InDelta(t, 3, testutil.ToFloat64(c.TriplesDropped.WithLabelValues(metrics.ReasonUnknownLabel)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.BatchesProduced.WithLabelValues("batched")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.SubgraphExhausted), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.CoverageMoves), 0)
}

func TestCollectors_NilSafe(t *testing.T) {
	var c *metrics.Collectors
	assert.NotPanics(t, func() {
		c.Dropped("x", 1)
		c.Batch("x")
		c.Exhausted()
		c.Moved(1)
	})
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New("")
	require.NoError(t, c.Register(reg))
	require.NoError(t, c.Register(reg))

	c.Batch("subgraph")
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
