package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	clientSubmits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recordctl",
			Subsystem: "client",
			Name:      "submits_total",
			Help:      "Instructions handed to the transport.",
		},
		[]string{"kind", "result"},
	)
	clientFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recordctl",
			Subsystem: "client",
			Name:      "fetches_total",
			Help:      "Account fetches through the transport.",
		},
		[]string{"result"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recordctl",
			Subsystem: "codec",
			Name:      "decode_failures_total",
			Help:      "Account or instruction bytes that failed to decode.",
		},
		[]string{"kind", "reason"},
	)
)

// Result labels.
const (
	ResultOK             = "ok"
	ResultEncodeError    = "encode_error"
	ResultTransportError = "transport_error"
	ResultDecodeError    = "decode_error"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(clientSubmits, clientFetches, decodeFailures)
	})
}

func RecordSubmit(kind, result string) {
	RegisterMetrics()
	clientSubmits.WithLabelValues(kind, result).Inc()
}

func RecordFetch(result string) {
	RegisterMetrics()
	clientFetches.WithLabelValues(result).Inc()
}

func RecordDecodeFailure(kind, reason string) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(kind, reason).Inc()
}
