package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

const (
	suiStatusSuccess = "success"
	suiStatusFailure = "failure"
)

type suiStatusProvider struct {
	client port.SuiClient
}

// NewSuiStatusProvider classifies Sui transaction blocks from their effects.
func NewSuiStatusProvider(client port.SuiClient) port.StatusProvider {
	return &suiStatusProvider{client: client}
}

func (p *suiStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardSui}
}

func (p *suiStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	effects, err := p.client.TransactionEffects(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if effects == nil {
		return entity.NotFound{}, nil
	}
	switch effects.Status {
	case suiStatusSuccess:
		return entity.Confirmed{}, nil
	case suiStatusFailure:
		return entity.Failed{Reason: effects.Error}, nil
	default:
		return entity.Pending{}, nil
	}
}
