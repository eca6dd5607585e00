// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	chatMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Consultant messages by role (user/assistant).",
		},
		[]string{"role"},
	)

	chatSendBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_send_blocked_total",
			Help: "Sends rejected by quota, per reason (credits/daily).",
		},
		[]string{"reason"},
	)

	chatStreamsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_streams_cancelled_total",
			Help: "Streaming reveals cancelled before completion.",
		},
	)

	chatStreamDurationMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_stream_duration_ms",
			Help:    "Streaming reveal duration in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
	)

	creditSyncFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_sync_failures_total",
			Help: "Failed credit-store propagations needing reconciliation.",
		},
		[]string{"action"},
	)

	catalogBrowseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_total",
			Help: "Catalog recomputes by sort key and whether filters were active.",
		},
		[]string{"sort", "filtered"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			chatMessagesTotal, chatSendBlocked, chatStreamsCancelled,
			chatStreamDurationMs, creditSyncFailures, catalogBrowseTotal,
		)
	})
}

// -------- Chat helpers --------

func MessageAppended(role string) {
	chatMessagesTotal.WithLabelValues(role).Inc()
}

func SendBlocked(reason string) {
	chatSendBlocked.WithLabelValues(reason).Inc()
}

func StreamCancelled() {
	chatStreamsCancelled.Inc()
}

func ObserveStreamDuration(ms int64) {
	chatStreamDurationMs.Observe(float64(ms))
}

func CreditSyncFailed(action string) {
	creditSyncFailures.WithLabelValues(action).Inc()
}

// -------- Catalog helpers --------

func CatalogBrowse(sort string, activeFilters int) {
	catalogBrowseTotal.WithLabelValues(sort, strconv.FormatBool(activeFilters > 0)).Inc()
}
