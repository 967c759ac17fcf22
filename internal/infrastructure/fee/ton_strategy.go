package fee

import (
	"context"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// tonJettonForwardAmount is attached to jetton transfers to pay the jetton wallets, in nanoton.
const tonJettonForwardAmount = 80000000

type tonFeeStrategy struct {
	client   port.TonClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewTonFeeStrategy creates the Ton fee strategy.
func NewTonFeeStrategy(client port.TonClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &tonFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *tonFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardTon
}

func (s *tonFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardTon)
	if err != nil {
		return nil, err
	}
	common := tx.Common()
	if len(common.EstimationPayload) == 0 {
		return nil, payloadRequired(chain)
	}

	amount, err := s.client.EstimateFee(ctx, common.Coin.Address, common.EstimationPayload)
	if err != nil {
		return nil, err
	}
	return entity.BasicFee{Amount: withJettonForward(amount, common.Coin)}, nil
}

func withJettonForward(amount *big.Int, coin entity.Coin) *big.Int {
	if coin.IsNativeToken {
		return amount
	}
	return new(big.Int).Add(amount, big.NewInt(tonJettonForwardAmount))
}

func (s *tonFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardTon)
	if err != nil {
		return nil, err
	}
	amount, ok := s.defaults.Amount(chain)
	if !ok {
		return s.defaults.basicFee(chain)
	}
	return entity.BasicFee{Amount: withJettonForward(amount, tx.Common().Coin)}, nil
}
