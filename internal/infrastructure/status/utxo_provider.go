package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type utxoStatusProvider struct {
	client port.UTXOClient
}

// NewUTXOStatusProvider classifies UTXO transactions from the block explorer index.
func NewUTXOStatusProvider(client port.UTXOClient) port.StatusProvider {
	return &utxoStatusProvider{client: client}
}

func (p *utxoStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardUTXO}
}

func (p *utxoStatusProvider) CheckStatus(ctx context.Context, txHash string, chain entity.Chain) (entity.TransactionResult, error) {
	tx, err := p.client.Transaction(ctx, chain, txHash)
	if err != nil {
		return nil, err
	}
	switch {
	case tx == nil:
		return entity.NotFound{}, nil
	case tx.BlockID < 0:
		return entity.Pending{}, nil
	default:
		return entity.Confirmed{}, nil
	}
}
