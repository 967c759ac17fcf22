package status

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type tonStatusProvider struct {
	client port.TonClient
}

// NewTonStatusProvider classifies Ton messages by the transaction they produced.
func NewTonStatusProvider(client port.TonClient) port.StatusProvider {
	return &tonStatusProvider{client: client}
}

func (p *tonStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardTon}
}

func (p *tonStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	tx, err := p.client.TransactionByMessage(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return entity.NotFound{}, nil
	}
	if tx.Aborted || !tx.ComputeSuccess {
		return entity.Failed{Reason: fmt.Sprintf("aborted, exit code %d", tx.ExitCode)}, nil
	}
	return entity.Confirmed{}, nil
}
