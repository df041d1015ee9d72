// Package metrics collects and exposes Prometheus metrics for the
// chat pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts pipeline events.
type Collector struct {
	turnsTotal      prometheus.Counter
	llmFailures     prometheus.Counter
	memoriesCreated prometheus.Counter
	wsConnections   prometheus.Gauge
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		turnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disha_chat_turns_total",
			Help: "Completed chat turns, including fallback replies.",
		}),
		llmFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disha_llm_failures_total",
			Help: "LLM provider calls that failed and were replaced by the fallback reply.",
		}),
		memoriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "disha_memories_created_total",
			Help: "Memories persisted by the extractor.",
		}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "disha_websocket_connections",
			Help: "Currently open WebSocket connections.",
		}),
	}

	reg.MustRegister(c.turnsTotal, c.llmFailures, c.memoriesCreated, c.wsConnections)
	return c
}

func (c *Collector) RecordTurn() {
	c.turnsTotal.Inc()
}

func (c *Collector) RecordLLMFailure() {
	c.llmFailures.Inc()
}

func (c *Collector) RecordMemoriesCreated(count int) {
	c.memoriesCreated.Add(float64(count))
}

func (c *Collector) WSConnected() {
	c.wsConnections.Inc()
}

func (c *Collector) WSDisconnected() {
	c.wsConnections.Dec()
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
