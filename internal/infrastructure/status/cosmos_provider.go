package status

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type cosmosStatusProvider struct {
	client port.CosmosClient
}

// NewCosmosStatusProvider classifies Cosmos-SDK transactions, THORChain and MayaChain included.
func NewCosmosStatusProvider(client port.CosmosClient) port.StatusProvider {
	return &cosmosStatusProvider{client: client}
}

func (p *cosmosStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardCosmos, entity.StandardThorChain}
}

func (p *cosmosStatusProvider) CheckStatus(ctx context.Context, txHash string, chain entity.Chain) (entity.TransactionResult, error) {
	resp, err := p.client.TxResponse(ctx, chain, txHash)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return entity.NotFound{}, nil
	}
	if resp.Code == 0 {
		return entity.Confirmed{}, nil
	}
	reason := resp.RawLog
	if reason == "" {
		reason = fmt.Sprintf("%s/%d", resp.Codespace, resp.Code)
	}
	return entity.Failed{Reason: reason}, nil
}
