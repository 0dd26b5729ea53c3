package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/argus-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Blockchain interface {
		LatestBlockNumber(ctx context.Context) (model.BlockHeight, error)
		TransactionByHash(ctx context.Context, hash string) (model.Transaction, bool, error)
	}
	Repository interface {
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertBlockHeight(ctx context.Context, obs model.BlockHeightObservation) error
		MaxBlockHeight(ctx context.Context, chain model.Chain, network model.Network) (model.BlockHeight, error)
	}
	Metrics interface {
		ObserveHeadPoll(err error, height model.BlockHeight, started time.Time)
		ObserveTransaction(outcome string)
		ObserveFlush(err error, size int)
	}
	TransactionWriter interface {
		Start(ctx context.Context)
		Stop()
		Add(ctx context.Context, tx model.Transaction) error
	}
)
