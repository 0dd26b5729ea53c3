package ethereum

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/argus-backend/internal/model"
)

// rpcTransaction is the eth_getTransactionByHash result object. Pointer fields stay nil
// when the node omits them or sends null.
type rpcTransaction struct {
	Hash        string          `json:"hash"`
	BlockNumber *hexutil.Uint64 `json:"blockNumber"`
	Gas         *hexutil.Uint64 `json:"gas"`
	GasPrice    *hexutil.Big    `json:"gasPrice"`
	From        string          `json:"from"`
	To          *string         `json:"to"`
	Value       *hexutil.Big    `json:"value"`
	Input       string          `json:"input"`
}

// toDomain converts a node transaction. The node reports the gas limit as "gas" on this
// call; it is stored as GasUsed since no receipt is fetched. Timestamp stays nil: block
// time needs a block lookup.
func toDomain(src rpcTransaction, createdAt time.Time) (model.Transaction, error) {
	if src.Hash == "" {
		return model.Transaction{}, errors.New("transaction hash is missing")
	}

	tx := model.Transaction{
		Hash:        src.Hash,
		Chain:       model.Ethereum,
		BlockNumber: uint64Ptr(src.BlockNumber),
		GasUsed:     uint64Ptr(src.Gas),
		GasPrice:    bigInt(src.GasPrice),
		From:        src.From,
		Value:       bigInt(src.Value),
		Input:       src.Input,
		CreatedAt:   createdAt,
	}
	if src.To != nil && *src.To != "" {
		to := *src.To
		tx.To = &to
	}
	return tx, nil
}

func uint64Ptr(v *hexutil.Uint64) *uint64 {
	if v == nil {
		return nil
	}
	out := uint64(*v)
	return &out
}

func bigInt(v *hexutil.Big) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v.ToInt())
}
