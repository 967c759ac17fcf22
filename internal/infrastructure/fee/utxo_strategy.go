package fee

import (
	"context"
	"errors"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/utils"
)

const (
	// zcashConventionalFee is the ZIP-317 fee of a standard two-action transaction.
	zcashConventionalFee = 10000
	bitcoinConfTarget    = 2
)

type utxoFeeStrategy struct {
	client   port.UTXOClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewUTXOFeeStrategy creates the UTXO fee strategy.
func NewUTXOFeeStrategy(client port.UTXOClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &utxoFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *utxoFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardUTXO
}

// CalculateFees prices the transaction at the live fee rate times its virtual size.
func (s *utxoFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardUTXO)
	if err != nil {
		return nil, err
	}
	if chain == entity.Zcash {
		return entity.BasicFee{Amount: big.NewInt(zcashConventionalFee)}, nil
	}

	rate, err := s.feeRate(ctx, chain)
	if err != nil {
		return nil, err
	}
	vbytes := int64(defaultUTXOVBytes)
	if payload := tx.Common().EstimationPayload; len(payload) > 0 {
		vbytes = int64(len(payload))
	}
	return entity.BasicFee{Amount: new(big.Int).Mul(rate, big.NewInt(vbytes))}, nil
}

func (s *utxoFeeStrategy) feeRate(ctx context.Context, chain entity.Chain) (*big.Int, error) {
	if chain == entity.Bitcoin {
		rate, err := s.client.SmartFeeRate(ctx, chain, bitcoinConfTarget)
		if err == nil {
			return rate, nil
		}
		if !errors.Is(err, entity.ErrNotConfigured) {
			return nil, err
		}
	}

	suggested, err := s.client.SuggestedFeeRate(ctx, chain)
	if err != nil {
		return nil, err
	}
	return utils.MulDiv(suggested, 5, 2), nil
}

// CalculateDefaultFees implements port.FeeStrategy without RPC calls.
func (s *utxoFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardUTXO)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
