package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type polkadotStatusProvider struct {
	client port.PolkadotClient
}

// NewPolkadotStatusProvider classifies extrinsics indexed by Subscan.
func NewPolkadotStatusProvider(client port.PolkadotClient) port.StatusProvider {
	return &polkadotStatusProvider{client: client}
}

func (p *polkadotStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardSubstrate}
}

func (p *polkadotStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	ext, err := p.client.Extrinsic(ctx, txHash)
	if err != nil {
		return nil, err
	}
	switch {
	case ext == nil:
		return entity.NotFound{}, nil
	case !ext.Finalized:
		return entity.Pending{}, nil
	case ext.Success:
		return entity.Confirmed{}, nil
	}

	reason := "extrinsic failed"
	if ext.ErrorModule != "" || ext.ErrorName != "" {
		reason = ext.ErrorModule + "." + ext.ErrorName
	}
	return entity.Failed{Reason: reason}, nil
}
