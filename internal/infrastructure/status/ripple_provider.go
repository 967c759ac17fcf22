package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

const rippleResultSuccess = "tesSUCCESS"

type rippleStatusProvider struct {
	client port.RippleClient
}

// NewRippleStatusProvider classifies XRP Ledger transactions.
func NewRippleStatusProvider(client port.RippleClient) port.StatusProvider {
	return &rippleStatusProvider{client: client}
}

func (p *rippleStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardRipple}
}

func (p *rippleStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	tx, err := p.client.Transaction(ctx, txHash)
	if err != nil {
		return nil, err
	}
	switch {
	case tx == nil:
		return entity.NotFound{}, nil
	case !tx.Validated:
		return entity.Pending{}, nil
	case tx.Result == rippleResultSuccess:
		return entity.Confirmed{}, nil
	default:
		return entity.Failed{Reason: tx.Result}, nil
	}
}
