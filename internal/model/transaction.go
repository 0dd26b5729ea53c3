package model

import (
	"math/big"
	"time"
)

// BlockHeight is the index of the most recent block reported by a node.
type BlockHeight uint64

// Transaction is a chain transaction as ingested from a node.
// Nil pointer fields are unknown: the node did not report them.
type Transaction struct {
	Hash        string
	Chain       Chain
	BlockNumber *uint64
	GasUsed     *uint64
	GasPrice    *big.Int
	From        string
	To          *string
	Value       *big.Int
	Input       string
	// Timestamp is block time. eth_getTransactionByHash does not return it.
	Timestamp *time.Time
	CreatedAt time.Time
}

// Pending reports whether the transaction has not been included in a block yet.
func (t Transaction) Pending() bool {
	return t.BlockNumber == nil
}

// BlockHeightObservation records a chain head seen by the ingester.
type BlockHeightObservation struct {
	Chain      Chain
	Network    Network
	Height     BlockHeight
	ObservedAt time.Time
}
