package metrics

import (
	"strconv"

	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	retryAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_retry",
		Name:      "attempts_total",
		Help:      "Count of attempts made by the retry executor.",
	}, []string{"operation", "chain", "network", "status"})
	retryGiveUpTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_retry",
		Name:      "give_up_total",
		Help:      "Count of operations that failed terminally.",
	}, []string{"operation", "chain", "network", "interrupted"})
)

// Retry tracks retry executor outcomes.
type Retry struct {
	chain   string
	network string
}

// NewRetry constructs a Retry metrics collector.
func NewRetry(chain model.Chain, network model.Network) *Retry {
	c, n := chainLabels(chain, network)
	return &Retry{chain: c, network: n}
}

// ObserveAttempt records one attempt.
func (m Retry) ObserveAttempt(operation string, err error) {
	retryAttemptsTotal.WithLabelValues(operation, m.chain, m.network, status(err)).Inc()
}

// ObserveExhausted records a terminal failure.
func (m Retry) ObserveExhausted(operation string, interrupted bool) {
	retryGiveUpTotal.WithLabelValues(operation, m.chain, m.network, strconv.FormatBool(interrupted)).Inc()
}
