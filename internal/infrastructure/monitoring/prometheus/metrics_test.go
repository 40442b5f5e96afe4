package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := NewEngineMetrics("maintainpro")
	m.WorkOrdersGenerated("plant-a", 3)
	m.WorkOrdersGenerated("plant-a", 2)
	m.DraftsSkipped("plant-a", "duplicate_open", 1)
	m.EscalationsRaised("plant-a", 4)
	m.NotificationFailures(1)
	m.GenerationDuration("plant-a", 250*time.Millisecond)

	assert.Equal(t, float64(5), testutil.ToFloat64(m.generated.WithLabelValues("plant-a")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.skipped.WithLabelValues("plant-a", "duplicate_open")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.escalations.WithLabelValues("plant-a")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notificationFailures))
}

func TestEngineMetrics_ScopesAreIndependent(t *testing.T) {
	t.Parallel()

	m := NewEngineMetrics("maintainpro")
	m.WorkOrdersGenerated("plant-a", 1)
	m.WorkOrdersGenerated("plant-b", 7)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.generated.WithLabelValues("plant-a")))
	assert.Equal(t, float64(7), testutil.ToFloat64(m.generated.WithLabelValues("plant-b")))
}

func TestEngineMetrics_HandlerServesRegistry(t *testing.T) {
	t.Parallel()

	m := NewEngineMetrics("maintainpro")
	m.WorkOrdersGenerated("plant-a", 1)

	count, err := testutil.GatherAndCount(m.Registry(),
		"maintainpro_scheduler_workorders_generated_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NotNil(t, m.Handler())
}
