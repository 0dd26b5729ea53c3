package ethereum

import (
	"context"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/blockchain/jsonrpc"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Transport performs single JSON-RPC round trips.
	Transport interface {
		Send(ctx context.Context, method string, params []any) (*jsonrpc.Response, error)
		Close()
	}
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
