package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/blockchain/ethereum"
	"github.com/goodnatureofminers/argus-backend/internal/metrics"
	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/goodnatureofminers/argus-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/argus-backend/internal/service/ingester"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	RPCURL           string        `long:"rpc-url" env:"ETH_INGESTER_RPC_URL" description:"Ethereum JSON-RPC endpoint URL" required:"true"`
	RPCTimeout       time.Duration `long:"rpc-timeout" env:"ETH_INGESTER_RPC_TIMEOUT" description:"timeout for a single RPC call" default:"30s"`
	RPCRetryAttempts int           `long:"rpc-retry-attempts" env:"ETH_INGESTER_RPC_RETRY_ATTEMPTS" description:"attempts per RPC operation" default:"3"`
	Network          model.Network `long:"network" env:"ETH_INGESTER_NETWORK" description:"network name" default:"mainnet"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"ETH_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	MetricsAddr      string        `long:"metrics-addr" env:"ETH_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	PollInterval     time.Duration `long:"poll-interval" env:"ETH_INGESTER_POLL_INTERVAL" description:"chain head poll interval" default:"12s"`
	TxHashesFile     string        `long:"tx-hashes-file" env:"ETH_INGESTER_TX_HASHES_FILE" description:"file with one transaction hash per line to ingest before following the head"`
	Workers          int           `long:"workers" env:"ETH_INGESTER_WORKERS" description:"concurrent transaction lookups" default:"8"`
	WriteRPS         int           `long:"write-rps" env:"ETH_INGESTER_WRITE_RPS" description:"max ClickHouse batch writes per second" default:"50"`
	NoFollow         bool          `long:"no-follow" env:"ETH_INGESTER_NO_FOLLOW" description:"exit after ingesting the hashes file instead of following the head"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("eth ingester failed", zap.Error(err))
	}
	logger.Info("eth ingester stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close repository", zap.Error(err))
		}
	}()

	endpoint := ethereum.Config{
		URL:         cfg.RPCURL,
		Timeout:     cfg.RPCTimeout,
		MaxAttempts: cfg.RPCRetryAttempts,
	}
	adapter, err := ethereum.Open(ctx, endpoint,
		metrics.NewRPCClient(model.Ethereum, cfg.Network),
		metrics.NewRetry(model.Ethereum, cfg.Network),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init ethereum adapter: %w", err)
	}
	defer adapter.Close()

	svc, err := ingester.NewService(ingester.Config{
		Chain:        model.Ethereum,
		Network:      cfg.Network,
		PollInterval: cfg.PollInterval,
		Workers:      cfg.Workers,
		WriteRPS:     cfg.WriteRPS,
	}, adapter, repo, metrics.NewIngester(model.Ethereum, cfg.Network), logger)
	if err != nil {
		return err
	}

	if cfg.TxHashesFile != "" {
		if err := ingestHashesFile(ctx, svc, cfg.TxHashesFile); err != nil {
			return err
		}
	}
	if cfg.NoFollow {
		return nil
	}
	return svc.FollowHead(ctx)
}

func ingestHashesFile(ctx context.Context, svc *ingester.Service, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tx hashes file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	hashes, err := ingester.ReadHashes(f)
	if err != nil {
		return err
	}
	if _, err := svc.IngestTransactions(ctx, hashes); err != nil {
		return err
	}
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
