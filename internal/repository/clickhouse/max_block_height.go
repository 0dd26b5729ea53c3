package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
)

const maxBlockHeightQuery = `
SELECT coalesce(max(height), toUInt64(0)) AS max_height
FROM eth_block_heights
WHERE chain = ? AND network = ?`

// MaxBlockHeight returns the highest observed head for a chain/network, or 0.
func (r *Repository) MaxBlockHeight(ctx context.Context, chain model.Chain, network model.Network) (height model.BlockHeight, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", chain, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxBlockHeightQuery, string(chain), string(network))
	if err != nil {
		return 0, fmt.Errorf("query max block height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, fmt.Errorf("max block height not found")
	}

	var raw uint64
	if err = rows.Scan(&raw); err != nil {
		return 0, fmt.Errorf("scan max block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max block height: %w", err)
	}

	return model.BlockHeight(raw), nil
}
