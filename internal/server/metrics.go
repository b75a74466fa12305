package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes.
const (
	outcomeOK     = "ok"
	outcomeError  = "error"
	outcomeDryRun = "dry_run"
)

// Metrics holds the server collectors.
type Metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	refusals *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the server collectors with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loki_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		refusals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loki_mcp",
			Name:      "tool_refusals_total",
			Help:      "Tool invocations refused by module selection or read-only mode.",
		}, []string{"module"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "loki_mcp",
			Name:      "backend_request_seconds",
			Help:      "Latency of Loki API requests by tool.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}
	reg.MustRegister(m.calls, m.refusals, m.latency)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) toolCall(tool, outcome string) {
	m.calls.WithLabelValues(tool, outcome).Inc()
}

func (m *Metrics) refusal(module string) {
	m.refusals.WithLabelValues(module).Inc()
}

func (m *Metrics) backendRequest(tool string, d time.Duration) {
	m.latency.WithLabelValues(tool).Observe(d.Seconds())
}

func outcomeOf(res *mcp.CallToolResult, err error) string {
	switch {
	case err != nil || (res != nil && res.IsError):
		return outcomeError
	case strings.HasPrefix(resultText(res, nil), dryRunPrefix):
		return outcomeDryRun
	default:
		return outcomeOK
	}
}
