package port

import (
	"context"

	"fee_tracker/internal/domain/entity"
)

// StatusProvider classifies a transaction hash on the chains of its standards.
type StatusProvider interface {
	Standards() []entity.TokenStandard
	CheckStatus(ctx context.Context, txHash string, chain entity.Chain) (entity.TransactionResult, error)
}

// StatusRepository routes a status check to the provider of the chain's standard.
type StatusRepository interface {
	CheckStatus(ctx context.Context, chain entity.Chain, txHash string) (entity.TransactionResult, error)
}

// TxStatusConfigurationProvider exposes the per-chain polling table.
type TxStatusConfigurationProvider interface {
	GetConfigurationForChain(chain entity.Chain) (entity.TxStatusConfiguration, error)
	SupportsTxStatus(chain entity.Chain) bool
	SupportedChains() []entity.Chain
}

// TxStatusPoller produces verdicts for a transaction until a terminal one or cancellation.
type TxStatusPoller interface {
	Poll(ctx context.Context, chain entity.Chain, txHash string) (<-chan entity.TransactionResult, error)
}

// TxStatusWatcher runs watch sessions and remembers their latest update.
type TxStatusWatcher interface {
	Watch(ctx context.Context, chain entity.Chain, txHash string) (<-chan entity.TxStatusUpdate, error)
	LastKnown(chain entity.Chain, txHash string) (entity.TxStatusUpdate, bool)
	Stop(chain entity.Chain, txHash string) bool
	Close()
}
