package metrics

import (
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node JSON-RPC calls.",
	}, []string{"operation", "chain", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node JSON-RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "chain", "network", "status"})
)

// RPCClient tracks metrics for single JSON-RPC calls to a node.
type RPCClient struct {
	chain   string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(chain model.Chain, network model.Network) *RPCClient {
	c, n := chainLabels(chain, network)
	return &RPCClient{chain: c, network: n}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	s := status(err)
	rpcRequestsTotal.WithLabelValues(operation, m.chain, m.network, s).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.chain, m.network, s).Observe(time.Since(started).Seconds())
}
