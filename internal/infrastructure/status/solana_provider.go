package status

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type solanaStatusProvider struct {
	client port.SolanaClient
}

// NewSolanaStatusProvider classifies Solana signatures.
func NewSolanaStatusProvider(client port.SolanaClient) port.StatusProvider {
	return &solanaStatusProvider{client: client}
}

func (p *solanaStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardSolana}
}

func (p *solanaStatusProvider) CheckStatus(ctx context.Context, txHash string, _ entity.Chain) (entity.TransactionResult, error) {
	status, err := p.client.SignatureStatus(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return entity.NotFound{}, nil
	}
	if status.Err != nil {
		return entity.Failed{Reason: solanaErrReason(status.Err)}, nil
	}
	return entity.Confirmed{}, nil
}

// solanaErrReason renders the transaction error object, e.g. {"InstructionError":[0,"Custom"]}.
func solanaErrReason(txErr any) string {
	if s, ok := txErr.(string); ok {
		return s
	}
	raw, err := json.MarshalToString(txErr)
	if err != nil {
		return "transaction failed"
	}
	return raw
}
