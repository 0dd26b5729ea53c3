package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
)

const insertTransactionsQuery = `
INSERT INTO eth_transactions (
	chain,
	hash,
	block_number,
	gas_used,
	gas_price,
	from_address,
	to_address,
	value,
	input,
	tx_timestamp,
	created_at
) VALUES`

// InsertTransactions stores transactions. Unknown fields are written as NULL.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstChain(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Chain),
			tx.Hash,
			tx.BlockNumber,
			tx.GasUsed,
			decimal(tx.GasPrice),
			tx.From,
			tx.To,
			decimal(tx.Value),
			tx.Input,
			tx.Timestamp,
			tx.CreatedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %s: %w", tx.Hash, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func firstChain(txs []model.Transaction) model.Chain {
	if len(txs) == 0 {
		return ""
	}
	return txs[0].Chain
}

// decimal renders wei amounts as base-10 strings; ClickHouse keeps them in Nullable(String).
func decimal(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}
