package status

import (
	"context"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

const tronResultSuccess = "SUCCESS"

type tronStatusProvider struct {
	client port.TronClient
}

// NewTronStatusProvider classifies Tron transactions from their receipts.
func NewTronStatusProvider(client port.TronClient) port.StatusProvider {
	return &tronStatusProvider{client: client}
}

func (p *tronStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardTron}
}

func (p *tronStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	info, err := p.client.TransactionInfo(ctx, txHash)
	if err != nil {
		return nil, err
	}
	switch {
	case info == nil:
		return entity.NotFound{}, nil
	case info.BlockNumber == 0:
		return entity.Pending{}, nil
	case info.Result == "" || info.Result == tronResultSuccess:
		return entity.Confirmed{}, nil
	default:
		return entity.Failed{Reason: strings.TrimSpace(info.Result + " " + info.ResMessage)}, nil
	}
}
