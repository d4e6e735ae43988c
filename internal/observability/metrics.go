package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "udpchat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "udpchat",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	datagramsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "udpchat",
			Subsystem: "server",
			Name:      "datagrams_received_total",
			Help:      "Decoded inbound datagrams by kind.",
		},
		[]string{"node", "kind"},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "udpchat",
			Subsystem: "server",
			Name:      "decode_failures_total",
			Help:      "Inbound payloads that failed to decode.",
		},
		[]string{"node"},
	)
	fanoutSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "udpchat",
			Subsystem: "server",
			Name:      "fanout_sends_total",
			Help:      "Publish datagrams sent to subscribers.",
		},
		[]string{"node", "success"},
	)
	fanoutDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "udpchat",
			Subsystem: "server",
			Name:      "fanout_duration_seconds",
			Help:      "Time to fan one publish out to every subscriber.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			datagramsReceived,
			decodeFailures,
			fanoutSends,
			fanoutDuration,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDatagram(node, kind string) {
	RegisterMetrics()
	datagramsReceived.WithLabelValues(node, kind).Inc()
}

func RecordDecodeFailure(node string) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(node).Inc()
}

func RecordFanout(node string, sent, failed int, duration time.Duration) {
	RegisterMetrics()
	fanoutSends.WithLabelValues(node, "true").Add(float64(sent))
	fanoutSends.WithLabelValues(node, "false").Add(float64(failed))
	fanoutDuration.WithLabelValues(node).Observe(duration.Seconds())
}
