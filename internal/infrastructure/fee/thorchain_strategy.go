package fee

import (
	"context"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// mayaChainFee is the protocol-fixed native fee in 1e-10 CACAO.
const mayaChainFee = 2000000000

type thorChainFeeStrategy struct {
	client   port.ThorChainClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewThorChainFeeStrategy creates the THORChain and MayaChain fee strategy.
func NewThorChainFeeStrategy(client port.ThorChainClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &thorChainFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *thorChainFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardThorChain
}

func (s *thorChainFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardThorChain)
	if err != nil {
		return nil, err
	}
	if chain == entity.MayaChain {
		return entity.BasicFee{Amount: big.NewInt(mayaChainFee)}, nil
	}

	fee, err := s.client.NativeTxFee(ctx)
	if err != nil {
		return nil, err
	}
	return entity.BasicFee{Amount: fee}, nil
}

func (s *thorChainFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardThorChain)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
