package status

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

const receiptStatusSuccessful = 1

type evmStatusProvider struct {
	clients port.EVMClientProvider
	logger  port.Logger
}

// NewEVMStatusProvider classifies EVM transactions from their receipts.
func NewEVMStatusProvider(clients port.EVMClientProvider, logger port.Logger) port.StatusProvider {
	return &evmStatusProvider{clients: clients, logger: logger}
}

func (p *evmStatusProvider) Standards() []entity.TokenStandard {
	return []entity.TokenStandard{entity.StandardEVM}
}

func (p *evmStatusProvider) CheckStatus(ctx context.Context, txHash string, chain entity.Chain) (entity.TransactionResult, error) {
	client, err := p.clients.GetClient(chain)
	if err != nil {
		return nil, err
	}

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt on %s: %w", chain, err)
	}
	if receipt != nil {
		if receipt.Status == receiptStatusSuccessful {
			return entity.Confirmed{}, nil
		}
		return entity.Failed{Reason: "execution reverted"}, nil
	}

	known, err := client.TransactionKnown(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction on %s: %w", chain, err)
	}
	if !known {
		p.logger.Debug("Transaction not known to node", "chain", chain, "txHash", txHash)
		return entity.NotFound{}, nil
	}
	return entity.Pending{}, nil
}
