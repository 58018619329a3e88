package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeStale     = "stale"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

type WebhookMetrics struct {
	Events *prometheus.CounterVec
}

var Module = fx.Module("metrics",
	fx.Provide(NewWebhookMetrics),
)

func NewWebhookMetrics() *WebhookMetrics {
	return &WebhookMetrics{
		Events: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subsync",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Webhook events by type and outcome.",
		}, []string{"event_type", "outcome"}),
	}
}

func (m *WebhookMetrics) Observe(eventType, outcome string) {
	if m == nil || m.Events == nil {
		return
	}
	m.Events.WithLabelValues(eventType, outcome).Inc()
}
