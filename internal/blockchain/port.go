// Package blockchain defines the contract between ingestion services and chain node adapters.
package blockchain

import (
	"context"

	"github.com/goodnatureofminers/argus-backend/internal/model"
)

// Port is implemented by node adapters.
type Port interface {
	// LatestBlockNumber returns the current chain head reported by the node.
	LatestBlockNumber(ctx context.Context) (model.BlockHeight, error)
	// TransactionByHash returns the transaction and true, or false when the node does not know the hash.
	TransactionByHash(ctx context.Context, hash string) (model.Transaction, bool, error)
}
