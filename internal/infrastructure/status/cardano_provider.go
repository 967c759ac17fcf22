package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type cardanoStatusProvider struct {
	client port.CardanoClient
}

// NewCardanoStatusProvider classifies Cardano transactions indexed by Blockfrost.
func NewCardanoStatusProvider(client port.CardanoClient) port.StatusProvider {
	return &cardanoStatusProvider{client: client}
}

func (p *cardanoStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardCardano}
}

func (p *cardanoStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	tx, err := p.client.Transaction(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return entity.NotFound{}, nil
	}
	if !tx.ValidContract {
		return entity.Failed{Reason: "script validation failed"}, nil
	}
	return entity.Confirmed{}, nil
}
