package port

import (
	"context"

	"fee_tracker/internal/domain/entity"
)

// FeeStrategy prices transactions of a single chain standard.
type FeeStrategy interface {
	// Standard returns the chain family this strategy implements.
	Standard() entity.TokenStandard

	// CalculateFees queries the chain for live prices. RPC errors are returned to the caller.
	CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error)

	// CalculateDefaultFees returns a conservative estimate without any network call.
	CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error)
}

// FeeService routes a transaction to its strategy and falls back to default fees on failure.
type FeeService interface {
	CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error)
}

// FeeBatchService estimates fees for many transactions at once.
type FeeBatchService interface {
	EstimateBatch(ctx context.Context, items []entity.FeeRequestItem) []entity.FeeResultItem
}
