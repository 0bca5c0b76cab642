package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	generateCallsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gend",
			Subsystem: "engine",
			Name:      "generate_calls_total",
			Help:      "Total number of generate calls served",
		},
	)

	generateRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gend",
			Subsystem: "engine",
			Name:      "generate_requests_total",
			Help:      "Total number of requests across all generate calls",
		},
	)

	generatedTokensTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gend",
			Subsystem: "engine",
			Name:      "generated_tokens_total",
			Help:      "Total number of tokens emitted by the engine",
		},
	)

	engineReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gend",
			Subsystem: "engine",
			Name:      "ready",
			Help:      "1 while a handle is in the Ready state, 0 otherwise",
		},
	)
)

func init() {
	prometheus.MustRegister(generateCallsTotal, generateRequestsTotal, generatedTokensTotal, engineReady)
}
