package fee

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// cosmosGasLimits are the gas limits the wallet signs Cosmos-SDK transfers with.
var cosmosGasLimits = map[entity.Chain]int64{
	entity.GaiaChain:    200000,
	entity.Kujira:       200000,
	entity.Osmosis:      300000,
	entity.Terra:        300000,
	entity.TerraClassic: 300000,
	entity.Noble:        200000,
	entity.Akash:        200000,
	entity.Dydx:         200000,
}

type cosmosFeeStrategy struct {
	client   port.CosmosClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewCosmosFeeStrategy creates the Cosmos-SDK fee strategy.
func NewCosmosFeeStrategy(client port.CosmosClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &cosmosFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *cosmosFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardCosmos
}

// CalculateFees multiplies the node's minimum gas price by the chain's gas limit, rounding up.
func (s *cosmosFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardCosmos)
	if err != nil {
		return nil, err
	}
	gasLimit, ok := cosmosGasLimits[chain]
	if !ok {
		return nil, fmt.Errorf("%w: no gas limit for %s", entity.ErrUnsupportedChain, chain)
	}

	price, err := s.client.MinimumGasPrice(ctx, chain)
	if err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%s node reports no minimum gas price", chain)
	}

	amount := price.Mul(decimal.NewFromInt(gasLimit)).Ceil()
	return entity.BasicFee{Amount: amount.BigInt()}, nil
}

// CalculateDefaultFees implements port.FeeStrategy without RPC calls.
func (s *cosmosFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardCosmos)
	if err != nil {
		return nil, err
	}
	return s.defaults.basicFee(chain)
}
