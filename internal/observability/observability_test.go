package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnregisteredMetrics_Registerable(t *testing.T) {
	m := NewUnregisteredMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.RowsLoaded))

	m.RowsLoaded.WithLabelValues("sector").Add(51)
	m.FramesRendered.WithLabelValues("risk").Inc()

	assert.Equal(t, 51.0, testutil.ToFloat64(m.RowsLoaded.WithLabelValues("sector")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesRendered.WithLabelValues("risk")))
	assert.Len(t, m.collectors(), 11)
}
