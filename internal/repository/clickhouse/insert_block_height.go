package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
)

const insertBlockHeightQuery = `
INSERT INTO eth_block_heights (chain, network, height, observed_at)
VALUES (?, ?, ?, ?)`

// InsertBlockHeight records an observed chain head.
func (r *Repository) InsertBlockHeight(ctx context.Context, obs model.BlockHeightObservation) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_block_height", obs.Chain, err, start)
	}()

	if err = r.conn.Exec(ctx, insertBlockHeightQuery,
		string(obs.Chain),
		string(obs.Network),
		uint64(obs.Height),
		obs.ObservedAt,
	); err != nil {
		return fmt.Errorf("insert block height: %w", err)
	}
	return nil
}
