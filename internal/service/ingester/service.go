// Package ingester pulls chain heads and transactions from a node adapter into storage.
package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/clock"
	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/goodnatureofminers/argus-backend/pkg/batcher"
	"go.uber.org/zap"
)

// Config tunes the ingestion loops. Zero values fall back to defaults.
type Config struct {
	Chain         model.Chain
	Network       model.Network
	PollInterval  time.Duration
	Workers       int
	FlushSize     int
	FlushInterval time.Duration
	WriteRPS      int
}

// Service follows the chain head and ingests transactions by hash.
type Service struct {
	logger       *zap.Logger
	chain        model.Chain
	network      model.Network
	blockchain   Blockchain
	repo         Repository
	metrics      Metrics
	sleep        clock.SleepFunc
	now          func() time.Time
	pollInterval time.Duration
	workers      int
	newWriter    func(flush func(context.Context, []model.Transaction) error) TransactionWriter
}

// NewService builds a Service with dependencies.
func NewService(cfg Config, chain Blockchain, repo Repository, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if chain == nil {
		return nil, errors.New("ingester blockchain is required")
	}
	if repo == nil {
		return nil, errors.New("ingester repository is required")
	}
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if cfg.Chain == "" {
		return nil, errors.New("ingester chain is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = withDefaults(cfg)
	logger = logger.Named("ingester").With(
		zap.String("chain", string(cfg.Chain)),
		zap.String("network", string(cfg.Network)),
	)

	writerLogger := logger.Named("writer")
	return &Service{
		logger:       logger,
		chain:        cfg.Chain,
		network:      cfg.Network,
		blockchain:   chain,
		repo:         repo,
		metrics:      metrics,
		sleep:        clock.SleepWithContext,
		now:          time.Now,
		pollInterval: cfg.PollInterval,
		workers:      cfg.Workers,
		newWriter: func(flush func(context.Context, []model.Transaction) error) TransactionWriter {
			return batcher.New(writerLogger, flush, cfg.FlushSize, cfg.FlushInterval, cfg.WriteRPS)
		},
	}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkerCount
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.WriteRPS <= 0 {
		cfg.WriteRPS = defaultWriteRPS
	}
	return cfg
}
