package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObserveBackend(t *testing.T) {
	c := NewCollector("brewery")
	c.ObserveBackend("GET", 200, 10*time.Millisecond)
	c.ObserveBackend("GET", 200, 20*time.Millisecond)
	c.ObserveBackend("PATCH", 0, time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(c.BackendRequests.WithLabelValues("GET", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(c.BackendRequests.WithLabelValues("PATCH", "0")))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.ObserveBackend("GET", 500, time.Second)
		c.ObserveCache("layout", true)
		c.ObserveRollback("materials")
	})
}
