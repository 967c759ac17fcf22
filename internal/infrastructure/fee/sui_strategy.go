package fee

import (
	"context"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// suiDefaultGasUnits is the budget of a simple transfer when no transaction is available to dry-run.
const suiDefaultGasUnits = 4000

type suiFeeStrategy struct {
	client   port.SuiClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewSuiFeeStrategy creates the Sui fee strategy.
func NewSuiFeeStrategy(client port.SuiClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &suiFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *suiFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardSui
}

func (s *suiFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	if _, err := checkStandard(s.logger, tx, entity.StandardSui); err != nil {
		return nil, err
	}

	if payload := tx.Common().EstimationPayload; len(payload) > 0 {
		cost, err := s.client.DryRunGas(ctx, payload)
		if err != nil {
			return nil, err
		}
		return entity.BasicFee{Amount: new(big.Int).Add(cost.ComputationCost, cost.StorageCost)}, nil
	}

	price, err := s.client.ReferenceGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	return entity.BasicFee{Amount: new(big.Int).Mul(price, big.NewInt(suiDefaultGasUnits))}, nil
}

func (s *suiFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardSui)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
