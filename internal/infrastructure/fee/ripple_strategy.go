package fee

import (
	"context"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

type rippleFeeStrategy struct {
	client   port.RippleClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewRippleFeeStrategy creates the Ripple fee strategy.
func NewRippleFeeStrategy(client port.RippleClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &rippleFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *rippleFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardRipple
}

// CalculateFees adds the account reserve when a native payment would create the destination account.
func (s *rippleFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	if _, err := checkStandard(s.logger, tx, entity.StandardRipple); err != nil {
		return nil, err
	}
	networkFee, err := s.client.BaseFee(ctx)
	if err != nil {
		return nil, err
	}

	activation := new(big.Int)
	common := tx.Common()
	if common.Coin.IsNativeToken && common.To != "" {
		exists, err := s.client.AccountExists(ctx, common.To)
		if err != nil {
			return nil, err
		}
		if !exists {
			if activation, err = s.client.ReserveBase(ctx); err != nil {
				return nil, err
			}
		}
	}

	return entity.RippleFees{
		NetworkFee:           networkFee,
		AccountActivationFee: activation,
		Amount:               new(big.Int).Add(networkFee, activation),
	}, nil
}

func (s *rippleFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardRipple)
	if err != nil {
		return nil, err
	}
	networkFee, ok := s.defaults.Amount(chain)
	if !ok {
		networkFee = new(big.Int)
	}
	return entity.RippleFees{
		NetworkFee:           networkFee,
		AccountActivationFee: new(big.Int),
		Amount:               new(big.Int).Set(networkFee),
	}, nil
}
