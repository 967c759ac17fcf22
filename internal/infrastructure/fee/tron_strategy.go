package fee

import (
	"context"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// tronSwapDefaultFee is charged for swaps, which have no live Tron estimate.
	tronSwapDefaultFee = 8000000

	tronNativeTxBytes   = 300
	tronContractTxBytes = 345

	tronDefaultNativeFee     = 345000
	tronDefaultTokenFee      = 30000000
	tronDefaultActivationFee = 1100000
	tronDefaultMemoFee       = 1000000

	tronEnergyFactorBase   = 10000
	tronEnergyFactorPlaces = 10
)

type tronFeeStrategy struct {
	client   port.TronClient
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewTronFeeStrategy creates the Tron fee strategy.
func NewTronFeeStrategy(client port.TronClient, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &tronFeeStrategy{client: client, defaults: defaults, logger: logger}
}

func (s *tronFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardTron
}

type tronEnergy struct {
	required    *big.Int
	maxRequired *big.Int
}

// CalculateFees prices a transfer from the sender's free resources and the network's resource prices.
func (s *tronFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	if _, err := checkStandard(s.logger, tx, entity.StandardTron); err != nil {
		return nil, err
	}
	if tx.IsSwap() {
		return nil, fmt.Errorf("%w: tron swap", entity.ErrUnsupportedTransaction)
	}
	common := tx.Common()
	isNative := common.Coin.IsNativeToken

	var (
		params        entity.TronChainParameters
		resource      entity.TronAccountResource
		accountExists bool
		simulation    entity.TronSimulation
		energyFactor  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		params, err = s.client.ChainParameters(gctx)
		return err
	})
	g.Go(func() (err error) {
		resource, err = s.client.AccountResource(gctx, common.Coin.Address)
		return err
	})
	g.Go(func() (err error) {
		accountExists, err = s.client.AccountExists(gctx, common.To)
		return err
	})
	if !isNative {
		g.Go(func() (err error) {
			simulation, err = s.client.SimulateTransfer(gctx, common.Coin.Address, common.Coin.ContractAddress, common.To, entity.TxAmount(tx))
			return err
		})
		g.Go(func() (err error) {
			energyFactor, err = s.client.ContractEnergyFactor(gctx, common.Coin.ContractAddress)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bytes := int64(tronNativeTxBytes)
	if !isNative {
		bytes = tronContractTxBytes
	}
	bandwidthFee := big.NewInt(bytes * params.BandwidthPrice)
	if isNative && resource.AvailableBandwidth() >= bytes {
		bandwidthFee = new(big.Int)
	}

	amount := new(big.Int)
	if !accountExists {
		amount.Add(amount, big.NewInt(params.CreateAccountFee+params.CreateNewAccountFeeInContract))
		if isNative {
			bandwidthFee = new(big.Int)
		}
	}
	amount.Add(amount, bandwidthFee)
	if entity.TxMemo(tx) != "" {
		amount.Add(amount, big.NewInt(params.MemoFee))
	}

	fees := entity.TronFees{
		MaxEnergyRequired: new(big.Int),
		EnergyRequired:    new(big.Int),
		BandwidthRequired: big.NewInt(bytes),
	}
	if !isNative {
		energy, err := tronEnergyRequired(simulation, energyFactor, params.MaxEnergyFactor)
		if err != nil {
			return nil, err
		}
		fees.EnergyRequired = energy.required
		fees.MaxEnergyRequired = energy.maxRequired

		toPay := new(big.Int).Sub(energy.required, big.NewInt(resource.AvailableEnergy()))
		if toPay.Sign() > 0 {
			amount.Add(amount, toPay.Mul(toPay, big.NewInt(params.EnergyPrice)))
		}
	}
	fees.Amount = amount
	return fees, nil
}

// tronEnergyRequired scales the simulated energy by the contract's dynamic energy factor.
func tronEnergyRequired(sim entity.TronSimulation, factor, maxFactor int64) (tronEnergy, error) {
	used := sim.EnergyUsed
	if factor != 0 {
		used -= sim.EnergyPenalty
	}
	if used <= 0 {
		return tronEnergy{}, fmt.Errorf("tron simulation returned no energy usage")
	}

	base := decimal.NewFromInt(used)
	scale := func(f int64) *big.Int {
		multiplier := decimal.NewFromInt(f).
			DivRound(decimal.NewFromInt(tronEnergyFactorBase), tronEnergyFactorPlaces).
			Add(decimal.NewFromInt(1))
		return base.Mul(multiplier).Truncate(0).BigInt()
	}
	return tronEnergy{required: scale(factor), maxRequired: scale(maxFactor)}, nil
}

// CalculateDefaultFees assumes a new destination account and no free resources.
func (s *tronFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardTron)
	if err != nil {
		return nil, err
	}
	if tx.IsSwap() {
		return s.defaults.basicFee(chain)
	}

	bytes := int64(tronNativeTxBytes)
	amount := big.NewInt(tronDefaultNativeFee)
	if !tx.Common().Coin.IsNativeToken {
		bytes = tronContractTxBytes
		amount.SetInt64(tronDefaultTokenFee)
	}
	amount.Add(amount, big.NewInt(tronDefaultActivationFee))
	if entity.TxMemo(tx) != "" {
		amount.Add(amount, big.NewInt(tronDefaultMemoFee))
	}
	return entity.TronFees{
		MaxEnergyRequired: new(big.Int),
		EnergyRequired:    new(big.Int),
		BandwidthRequired: big.NewInt(bytes),
		Amount:            amount,
	}, nil
}
