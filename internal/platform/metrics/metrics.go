package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors the service exposes.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	WorkflowDecisions *prometheus.CounterVec
	SLABreaches       *prometheus.GaugeVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perfhub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "perfhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		WorkflowDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perfhub",
			Name:      "workflow_decisions_total",
			Help:      "Approval decisions by workflow kind and decision.",
		}, []string{"kind", "decision"}),
		SLABreaches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "perfhub",
			Name:      "sla_overdue_items",
			Help:      "Pending approvals currently past the decision threshold.",
		}, []string{"kind"}),
	}

	registry.MustRegister(m.HTTPRequests, m.HTTPDuration, m.WorkflowDecisions, m.SLABreaches)
	return m
}

// Handler serves the /metrics endpoint for this registry only.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
