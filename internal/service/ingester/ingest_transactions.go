package ingester

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/goodnatureofminers/argus-backend/internal/model"
	"github.com/goodnatureofminers/argus-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// IngestReport summarizes an IngestTransactions run.
type IngestReport struct {
	// Found transactions were returned by the node and queued for storage.
	Found int
	// Missing hashes are unknown to the node.
	Missing int
	// Failed lookups exhausted their retries.
	Failed int
	// Unwritten transactions were found but their batch failed to store.
	Unwritten int
}

// IngestTransactions looks up every distinct non-blank hash and stores the transactions found.
// A failing hash is logged and counted; only cancellation or a stopped writer aborts the run.
func (s *Service) IngestTransactions(ctx context.Context, hashes []string) (IngestReport, error) {
	unique := distinctHashes(hashes)
	if len(unique) == 0 {
		return IngestReport{}, nil
	}

	var found, missing, failed, unwritten atomic.Int64

	writer := s.newWriter(func(ctx context.Context, txs []model.Transaction) error {
		err := s.repo.InsertTransactions(ctx, txs)
		s.metrics.ObserveFlush(err, len(txs))
		if err != nil {
			unwritten.Add(int64(len(txs)))
		}
		return err
	})
	// Queued transactions are still flushed when ctx is canceled mid-run.
	writer.Start(context.WithoutCancel(ctx))

	s.logger.Info("ingesting transactions", zap.Int("hashes", len(unique)), zap.Int("workers", s.workers))

	err := workerpool.Process(ctx, s.workers, unique, func(ctx context.Context, hash string) error {
		tx, ok, err := s.blockchain.TransactionByHash(ctx, hash)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed.Add(1)
			s.metrics.ObserveTransaction(OutcomeFailed)
			s.logger.Warn("transaction lookup failed", zap.String("hash", hash), zap.Error(err))
			return nil
		}
		if !ok {
			missing.Add(1)
			s.metrics.ObserveTransaction(OutcomeMissing)
			s.logger.Debug("transaction not found", zap.String("hash", hash))
			return nil
		}

		if err := writer.Add(ctx, tx); err != nil {
			return fmt.Errorf("queue transaction %s: %w", hash, err)
		}
		found.Add(1)
		s.metrics.ObserveTransaction(OutcomeFound)
		return nil
	}, nil)

	writer.Stop()

	report := IngestReport{
		Found:     int(found.Load()),
		Missing:   int(missing.Load()),
		Failed:    int(failed.Load()),
		Unwritten: int(unwritten.Load()),
	}
	s.logger.Info("transaction ingestion finished",
		zap.Int("found", report.Found),
		zap.Int("missing", report.Missing),
		zap.Int("failed", report.Failed),
		zap.Int("unwritten", report.Unwritten),
	)

	if err != nil {
		return report, fmt.Errorf("ingest transactions: %w", err)
	}
	return report, nil
}

func distinctHashes(hashes []string) []string {
	seen := make(map[string]struct{}, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
