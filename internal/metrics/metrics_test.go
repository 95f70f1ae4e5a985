package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(HandlesAcquired.WithLabelValues("test"))
	Acquired("test")
	Acquired("test")
	Released("test")
	Failure("test")

	assert.Equal(t, before+2, testutil.ToFloat64(HandlesAcquired.WithLabelValues("test")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(HandlesReleased.WithLabelValues("test")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(ForeignFailures.WithLabelValues("test")), 1.0)

	families, err := Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "blsct_handles_acquired_total")
	assert.Contains(t, names, "blsct_handles_released_total")
	assert.Contains(t, names, "blsct_foreign_failures_total")
}
