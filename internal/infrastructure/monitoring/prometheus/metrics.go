// Package prometheus exposes the scheduling engine's operational metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// EngineMetrics implements the engine's metrics contract on a dedicated
// registry.
type EngineMetrics struct {
	registry *prometheus.Registry

	generated            *prometheus.CounterVec
	skipped              *prometheus.CounterVec
	escalations          *prometheus.CounterVec
	notificationFailures prometheus.Counter
	generationDuration   *prometheus.HistogramVec
}

// NewEngineMetrics builds the metric set under the given namespace, along
// with the standard Go and process collectors.
func NewEngineMetrics(namespace string) *EngineMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &EngineMetrics{
		registry: registry,
		generated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "workorders_generated_total",
			Help:      "Preventive work orders created by scheduling runs.",
		}, []string{"scope"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "drafts_skipped_total",
			Help:      "Draft work orders skipped during scheduling runs, by reason.",
		}, []string{"scope", "reason"}),
		escalations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "escalations_total",
			Help:      "Escalation level advances applied to overdue work orders.",
		}, []string{"scope"}),
		notificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "notification_failures_total",
			Help:      "Notification publishes that failed and were dropped.",
		}),
		generationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of one scheduling batch.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scope"}),
	}
}

func (m *EngineMetrics) WorkOrdersGenerated(scopeID common.ScopeID, n int) {
	m.generated.WithLabelValues(scopeID.String()).Add(float64(n))
}

func (m *EngineMetrics) DraftsSkipped(scopeID common.ScopeID, reason string, n int) {
	m.skipped.WithLabelValues(scopeID.String(), reason).Add(float64(n))
}

func (m *EngineMetrics) EscalationsRaised(scopeID common.ScopeID, n int) {
	m.escalations.WithLabelValues(scopeID.String()).Add(float64(n))
}

func (m *EngineMetrics) NotificationFailures(n int) {
	m.notificationFailures.Add(float64(n))
}

func (m *EngineMetrics) GenerationDuration(scopeID common.ScopeID, d time.Duration) {
	m.generationDuration.WithLabelValues(scopeID.String()).Observe(d.Seconds())
}

// Registry exposes the underlying registry for tests.
func (m *EngineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the /metrics HTTP handler for this metric set.
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
