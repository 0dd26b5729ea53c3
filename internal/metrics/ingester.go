package metrics

import (
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterHeadPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "head_poll_total",
		Help:      "Count of chain head polls.",
	}, []string{"chain", "network", "status"})
	ingesterHeadPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "head_poll_duration_seconds",
		Help:      "Duration of a chain head poll, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain", "network", "status"})
	ingesterHeadHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "head_height",
		Help:      "Last chain head height observed.",
	}, []string{"chain", "network"})
	ingesterTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "transactions_total",
		Help:      "Count of transaction lookups by outcome.",
	}, []string{"chain", "network", "outcome"})
	ingesterFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "flush_size",
		Help:      "Number of transactions written per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"chain", "network", "status"})
)

// Ingester tracks metrics for the ingestion service.
type Ingester struct {
	chain   string
	network string
}

// NewIngester constructs an Ingester metrics collector.
func NewIngester(chain model.Chain, network model.Network) *Ingester {
	c, n := chainLabels(chain, network)
	return &Ingester{chain: c, network: n}
}

// ObserveHeadPoll records a head poll; height is exported only on success.
func (m Ingester) ObserveHeadPoll(err error, height model.BlockHeight, started time.Time) {
	s := status(err)
	ingesterHeadPollTotal.WithLabelValues(m.chain, m.network, s).Inc()
	ingesterHeadPollDuration.WithLabelValues(m.chain, m.network, s).Observe(time.Since(started).Seconds())
	if err == nil {
		ingesterHeadHeight.WithLabelValues(m.chain, m.network).Set(float64(height))
	}
}

// ObserveTransaction records a lookup outcome: found, missing or failed.
func (m Ingester) ObserveTransaction(outcome string) {
	ingesterTransactionsTotal.WithLabelValues(m.chain, m.network, outcome).Inc()
}

// ObserveFlush records a batch write.
func (m Ingester) ObserveFlush(err error, size int) {
	ingesterFlushSize.WithLabelValues(m.chain, m.network, status(err)).Observe(float64(size))
}
