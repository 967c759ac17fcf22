package fee

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type polkadotFeeStrategy struct {
	client   port.PolkadotClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewPolkadotFeeStrategy creates the Substrate fee strategy.
func NewPolkadotFeeStrategy(client port.PolkadotClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &polkadotFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *polkadotFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardSubstrate
}

func (s *polkadotFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardSubstrate)
	if err != nil {
		return nil, err
	}
	payload := tx.Common().EstimationPayload
	if len(payload) == 0 {
		return nil, payloadRequired(chain)
	}

	fee, err := s.client.PartialFee(ctx, payload)
	if err != nil {
		return nil, err
	}
	return entity.BasicFee{Amount: fee}, nil
}

func (s *polkadotFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardSubstrate)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
