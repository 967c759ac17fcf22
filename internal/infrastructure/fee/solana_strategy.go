package fee

import (
	"context"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// solanaMinPriorityFee is the lowest fee charged, in lamports.
const solanaMinPriorityFee = 1000000

type solanaFeeStrategy struct {
	client   port.SolanaClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewSolanaFeeStrategy creates the Solana fee strategy.
func NewSolanaFeeStrategy(client port.SolanaClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &solanaFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *solanaFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardSolana
}

// CalculateFees uses the highest recent prioritization fee of the sender, never below the minimum.
func (s *solanaFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	if _, err := checkStandard(s.logger, tx, entity.StandardSolana); err != nil {
		return nil, err
	}
	fees, err := s.client.RecentPrioritizationFees(ctx, []string{tx.Common().Coin.Address})
	if err != nil {
		return nil, err
	}

	highest := uint64(solanaMinPriorityFee)
	for _, f := range fees {
		if f > highest {
			highest = f
		}
	}
	return entity.BasicFee{Amount: new(big.Int).SetUint64(highest)}, nil
}

func (s *solanaFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardSolana)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
