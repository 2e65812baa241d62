package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	MessagesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbatch_messages_collected_total",
			Help: "Number of messages added to a batch",
		},
		[]string{"topic"},
	)
	MessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbatch_messages_dropped_total",
			Help: "Number of messages delivered after the batch was already complete",
		},
		[]string{"topic"},
	)
	BatchesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbatch_batches_completed_total",
			Help: "Number of completed batches by completion reason",
		},
		[]string{"topic", "reason"}, // count|timeout
	)
	BatchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kbatch_batch_failures_total",
			Help: "Number of failed executions by lifecycle stage",
		},
		[]string{"topic", "stage"}, // connect|subscribe|collect
	)
	CleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kbatch_cleanup_failures_total",
			Help: "Number of failed disconnects",
		},
	)
	BatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kbatch_batch_duration_seconds",
			Help:    "Duration of the collection phase",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"reason"},
	)
	KafkaFetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_fetch_errors_total",
			Help: "Number of failed FetchMessage calls",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		MessagesCollected, MessagesDropped, BatchesCompleted, BatchFailures,
		CleanupFailures, BatchDuration, KafkaFetchErrors, CacheOps, CacheSize,
	}
}

// MustRegister — регистрирует метрики в глобальном реестре. Повторный вызов — no-op.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(collectors()...)
	})
}

// Push — отправка метрик в Pushgateway (для одноразового запуска, который не живёт до scrape).
func Push(ctx context.Context, url, job string) error {
	pusher := push.New(url, job)
	for _, c := range collectors() {
		pusher = pusher.Collector(c)
	}
	return pusher.PushContext(ctx)
}
