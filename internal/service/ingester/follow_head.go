package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
	"go.uber.org/zap"
)

// FollowHead polls the node for its head and records every new height until ctx is canceled.
func (s *Service) FollowHead(ctx context.Context) error {
	last, err := s.repo.MaxBlockHeight(ctx, s.chain, s.network)
	if err != nil {
		return fmt.Errorf("load last observed height: %w", err)
	}
	s.logger.Info("following chain head",
		zap.Uint64("from_height", uint64(last)),
		zap.Duration("poll_interval", s.pollInterval),
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		height, err := s.pollHead(ctx, last)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("head poll failed, backing off", zap.Error(err), zap.Duration("sleep", s.pollInterval))
		}
		last = height

		if err := s.sleep(ctx, s.pollInterval); err != nil {
			return err
		}
	}
}

// pollHead returns the highest height seen so far, which is last on failure.
func (s *Service) pollHead(ctx context.Context, last model.BlockHeight) (model.BlockHeight, error) {
	started := time.Now()
	height, err := s.blockchain.LatestBlockNumber(ctx)
	s.metrics.ObserveHeadPoll(err, height, started)
	if err != nil {
		return last, err
	}

	if height <= last {
		s.logger.Debug("chain head unchanged", zap.Uint64("height", uint64(height)), zap.Uint64("last", uint64(last)))
		return last, nil
	}

	obs := model.BlockHeightObservation{
		Chain:      s.chain,
		Network:    s.network,
		Height:     height,
		ObservedAt: s.now().UTC(),
	}
	if err := s.repo.InsertBlockHeight(ctx, obs); err != nil {
		return last, fmt.Errorf("store block height %d: %w", height, err)
	}

	s.logger.Info("new chain head", zap.Uint64("height", uint64(height)), zap.Uint64("advanced_by", uint64(height-last)))
	return height, nil
}
