// Package ethereum adapts an Ethereum JSON-RPC node to blockchain.Port.
package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/argus-backend/internal/blockchain"
	"github.com/goodnatureofminers/argus-backend/internal/blockchain/jsonrpc"
	"github.com/goodnatureofminers/argus-backend/internal/blockchain/retry"
	"github.com/goodnatureofminers/argus-backend/internal/model"
	"go.uber.org/zap"
)

const (
	methodClientVersion     = "web3_clientVersion"
	methodBlockNumber       = "eth_blockNumber"
	methodTransactionByHash = "eth_getTransactionByHash"
)

var _ blockchain.Port = (*Adapter)(nil)

// Config is the node endpoint configuration. All fields are required.
type Config struct {
	URL         string
	Timeout     time.Duration
	MaxAttempts int
}

func (c Config) validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("rpc url is required")
	}
	if c.Timeout <= 0 {
		return errors.New("rpc timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("rpc retry attempts must be at least 1")
	}
	return nil
}

// Adapter is the Ethereum node client. It owns its transport until Close.
type Adapter struct {
	transport  Transport
	retry      *retry.Executor
	rpcMetrics RPCMetrics
	logger     *zap.Logger
	now        func() time.Time
	closeOnce  sync.Once
}

// Open builds an Adapter and probes the node. A failed probe is logged; Open still succeeds
// so the process can start while the node is unreachable.
func Open(
	ctx context.Context,
	cfg Config,
	rpcMetrics RPCMetrics,
	retryMetrics retry.Metrics,
	logger *zap.Logger,
) (*Adapter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rpcMetrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ethereum")

	executor, err := retry.New(retry.Config{MaxAttempts: cfg.MaxAttempts}, retryMetrics, logger.Named("retry"))
	if err != nil {
		return nil, fmt.Errorf("init retry executor: %w", err)
	}
	transport, err := jsonrpc.NewTransport(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("init rpc transport: %w", err)
	}

	logger.Info("initializing blockchain adapter",
		zap.String("rpc_url", transport.Endpoint()),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("retry_attempts", cfg.MaxAttempts),
	)

	a := newAdapter(transport, executor, rpcMetrics, logger)
	a.probe(ctx)
	return a, nil
}

func newAdapter(transport Transport, executor *retry.Executor, rpcMetrics RPCMetrics, logger *zap.Logger) *Adapter {
	return &Adapter{
		transport:  transport,
		retry:      executor,
		rpcMetrics: rpcMetrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Close releases the transport. Later calls are no-ops.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		a.logger.Info("shutting down blockchain connection")
		a.transport.Close()
	})
}

// LatestBlockNumber returns the head block height.
func (a *Adapter) LatestBlockNumber(ctx context.Context) (model.BlockHeight, error) {
	a.logger.Debug("fetching latest block number")

	op := retry.Operation{Name: "get_latest_block_number", Description: "get latest block number"}
	height, err := retry.Do(ctx, a.retry, op, func(ctx context.Context) (model.BlockHeight, error) {
		raw, err := a.call(ctx, methodBlockNumber, nil)
		if err != nil {
			return 0, err
		}
		return decodeBlockNumber(raw)
	})
	if err != nil {
		return 0, err
	}

	a.logger.Debug("latest block number", zap.Uint64("height", uint64(height)))
	return height, nil
}

type lookup struct {
	tx    model.Transaction
	found bool
}

// TransactionByHash returns the transaction with the given hash. A node answer of null is
// reported as found == false with a nil error.
func (a *Adapter) TransactionByHash(ctx context.Context, hash string) (model.Transaction, bool, error) {
	if strings.TrimSpace(hash) == "" {
		return model.Transaction{}, false, fmt.Errorf("%w: transaction hash cannot be null or empty", blockchain.ErrInvalidArgument)
	}
	logger := a.logger.With(zap.String("tx_hash", hash))
	logger.Debug("fetching transaction by hash")

	op := retry.Operation{Name: "get_transaction_by_hash", Description: "get transaction " + hash}
	res, err := retry.Do(ctx, a.retry, op, func(ctx context.Context) (lookup, error) {
		raw, err := a.call(ctx, methodTransactionByHash, []any{hash})
		if err != nil {
			return lookup{}, err
		}
		if jsonrpc.IsNull(raw) {
			return lookup{}, nil
		}
		var payload rpcTransaction
		if err := json.Unmarshal(raw, &payload); err != nil {
			return lookup{}, &blockchain.ProtocolError{Message: fmt.Sprintf("malformed transaction: %v", err)}
		}
		tx, err := toDomain(payload, a.now())
		if err != nil {
			return lookup{}, &blockchain.ProtocolError{Message: err.Error()}
		}
		return lookup{tx: tx, found: true}, nil
	})
	if err != nil {
		return model.Transaction{}, false, err
	}

	if !res.found {
		logger.Debug("transaction not found")
		return model.Transaction{}, false, nil
	}
	logger.Debug("fetched transaction")
	return res.tx, true, nil
}

func (a *Adapter) probe(ctx context.Context) {
	raw, err := a.call(ctx, methodClientVersion, nil)
	if err != nil {
		a.logger.Warn("failed to verify blockchain connection", zap.Error(err))
		return
	}
	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		a.logger.Warn("failed to decode blockchain client version", zap.Error(err))
		return
	}
	a.logger.Info("connected to blockchain client", zap.String("client_version", version))
}

func (a *Adapter) call(ctx context.Context, method string, params []any) (raw json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		a.rpcMetrics.Observe(method, err, started)
	}()

	resp, err := a.transport.Send(ctx, method, params)
	if err != nil {
		return nil, err
	}
	return jsonrpc.Classify(resp)
}

func decodeBlockNumber(raw json.RawMessage) (model.BlockHeight, error) {
	if jsonrpc.IsNull(raw) {
		return 0, &blockchain.ProtocolError{Message: "empty response"}
	}
	var height hexutil.Uint64
	if err := json.Unmarshal(raw, &height); err != nil {
		return 0, &blockchain.ProtocolError{Message: fmt.Sprintf("malformed block number %s: %v", raw, err)}
	}
	return model.BlockHeight(height), nil
}
