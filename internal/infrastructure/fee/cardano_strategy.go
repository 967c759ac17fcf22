package fee

import (
	"context"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/fxamacker/cbor/v2"
)

const (
	defaultCardanoTxSize = 300
	// vkeyWitnessSize is what one vkey witness adds to an empty witness set:
	// {0: [[vkey(32), signature(64)]]} replacing the empty map.
	vkeyWitnessSize = 103
	cborEmptyMap    = 0xa0
)

type cardanoFeeStrategy struct {
	client   port.CardanoClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewCardanoFeeStrategy creates the Cardano fee strategy.
func NewCardanoFeeStrategy(client port.CardanoClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &cardanoFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *cardanoFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardCardano
}

// CalculateFees applies the linear fee min_fee_a * size + min_fee_b.
func (s *cardanoFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	if _, err := checkStandard(s.logger, tx, entity.StandardCardano); err != nil {
		return nil, err
	}
	size, err := cardanoTxSize(tx.Common().EstimationPayload)
	if err != nil {
		return nil, err
	}
	params, err := s.client.ProtocolParameters(ctx)
	if err != nil {
		return nil, err
	}

	amount := new(big.Int).SetUint64(params.MinFeeA)
	amount.Mul(amount, big.NewInt(size))
	amount.Add(amount, new(big.Int).SetUint64(params.MinFeeB))
	return entity.BasicFee{Amount: amount}, nil
}

// cardanoTxSize returns the signed size of a CBOR transaction, or the default
// size without payload. An unsigned transaction is counted with one witness.
func cardanoTxSize(payload []byte) (int64, error) {
	if len(payload) == 0 {
		return defaultCardanoTxSize, nil
	}

	var parts []cbor.RawMessage
	if err := cbor.Unmarshal(payload, &parts); err != nil {
		return 0, fmt.Errorf("failed to decode cardano transaction: %w", err)
	}
	if len(parts) < 2 {
		return 0, fmt.Errorf("cardano transaction has %d elements, want at least 2", len(parts))
	}

	size := int64(len(payload))
	if witnesses := parts[1]; len(witnesses) == 1 && witnesses[0] == cborEmptyMap {
		size += vkeyWitnessSize
	}
	return size, nil
}

// CalculateDefaultFees implements port.FeeStrategy without RPC calls.
func (s *cardanoFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardCardano)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
