package fee

import (
	"context"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

var (
	l2PriorityFloor      = big.NewInt(20 * gwei)
	polygonPriorityFloor = big.NewInt(30 * gwei)
	defaultPriorityFloor = big.NewInt(gwei)
)

// evmFeeStrategy prices EVM transactions: legacy gas price on chains that only
// support it, EIP-1559 elsewhere, plus the L1 data fee on OP-stack rollups.
type evmFeeStrategy struct {
	clients  port.EVMClientProvider
	defaults *DefaultFeeTable
	logger   port.Logger
}

// NewEVMFeeStrategy creates the EVM fee strategy.
func NewEVMFeeStrategy(clients port.EVMClientProvider, defaults *DefaultFeeTable, logger port.Logger) port.FeeStrategy {
	return &evmFeeStrategy{clients: clients, defaults: defaults, logger: logger}
}

func (s *evmFeeStrategy) Standard() entity.TokenStandard {
	return entity.StandardEVM
}

// CalculateFees implements port.FeeStrategy.
func (s *evmFeeStrategy) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardEVM)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetClient(chain)
	if err != nil {
		return nil, err
	}

	call, err := buildEVMCall(tx)
	if err != nil {
		return nil, err
	}
	limit, err := s.gasLimit(ctx, client, tx, call)
	if err != nil {
		return nil, err
	}

	if chain.SupportsLegacyGas() {
		price, err := client.GasPrice(ctx)
		if err != nil {
			return nil, err
		}
		return entity.GasFees{
			Price:  price,
			Limit:  limit,
			Amount: new(big.Int).Mul(price, limit),
		}, nil
	}

	var baseFee, priority *big.Int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baseFee, err = client.BaseFee(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		priority, err = s.maxPriorityFeePerGas(gctx, client, chain)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l1Fee, err := s.l1DataFee(ctx, client, tx, call)
	if err != nil {
		return nil, err
	}

	return eip1559Fee(baseFee, priority, limit, l1Fee, tx.IsSwap()), nil
}

// eip1559Fee assembles the fee: swaps bump the network price by 10%, rounded down.
func eip1559Fee(baseFee, priority, limit, l1Fee *big.Int, isSwap bool) entity.Eip1559 {
	networkPrice := new(big.Int).Set(baseFee)
	if isSwap {
		networkPrice = utils.MulDiv(baseFee, 110, 100)
	}
	maxFee := new(big.Int).Add(networkPrice, priority)
	amount := new(big.Int).Mul(maxFee, limit)
	amount.Add(amount, l1Fee)

	return entity.Eip1559{
		Limit:                limit,
		NetworkPrice:         networkPrice,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priority,
		L1DataFee:            l1Fee,
		Amount:               amount,
	}
}

func (s *evmFeeStrategy) maxPriorityFeePerGas(ctx context.Context, client port.EVMClient, chain entity.Chain) (*big.Int, error) {
	switch chain {
	case entity.Arbitrum:
		return selectPriorityFee(chain, nil), nil
	case entity.Avalanche:
		return client.MaxPriorityFeePerGas(ctx)
	}

	rewards, err := client.FeeHistoryRewards(ctx)
	if err != nil {
		return nil, err
	}
	return selectPriorityFee(chain, rewards), nil
}

// selectPriorityFee picks the tip from ascending fee-history rewards.
func selectPriorityFee(chain entity.Chain, rewards []*big.Int) *big.Int {
	if chain == entity.Arbitrum {
		// Arbitrum ignores tips
		return new(big.Int)
	}
	floor := priorityFloor(chain)
	if len(rewards) == 0 {
		return new(big.Int).Set(floor)
	}

	var picked *big.Int
	switch chain {
	case entity.Base, entity.Blast, entity.Optimism:
		picked = rewards[len(rewards)-1]
	default:
		picked = rewards[len(rewards)/2]
	}
	return new(big.Int).Set(utils.MaxBigInt(picked, floor))
}

func priorityFloor(chain entity.Chain) *big.Int {
	switch chain {
	case entity.Base, entity.Blast, entity.Optimism:
		return l2PriorityFloor
	case entity.Polygon:
		return polygonPriorityFloor
	default:
		return defaultPriorityFloor
	}
}

func (s *evmFeeStrategy) gasLimit(ctx context.Context, client port.EVMClient, tx entity.BlockchainTransaction, call entity.EVMCall) (*big.Int, error) {
	if swap, ok := asSwap(tx); ok && swap.Limit > 0 {
		return new(big.Int).SetUint64(swap.Limit), nil
	}
	estimate, err := client.EstimateGas(ctx, call)
	if err != nil {
		return nil, err
	}
	return InflateGasLimit(estimate), nil
}

// isOPStack reports chains whose L1 cost is charged separately through the GasPriceOracle.
func isOPStack(chain entity.Chain) bool {
	switch chain {
	case entity.Base, entity.Blast, entity.Optimism:
		return true
	default:
		return false
	}
}

func (s *evmFeeStrategy) l1DataFee(ctx context.Context, client port.EVMClient, tx entity.BlockchainTransaction, call entity.EVMCall) (*big.Int, error) {
	chain := entity.TxChain(tx)
	if !chain.IsLayer2() || !isOPStack(chain) {
		return new(big.Int), nil
	}
	data := tx.Common().EstimationPayload
	if len(data) == 0 {
		data = call.Data
	}
	fee, err := client.L1DataFee(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to get L1 data fee on %s: %w", chain, err)
	}
	return fee, nil
}

// buildEVMCall builds the message used for gas estimation.
func buildEVMCall(tx entity.BlockchainTransaction) (entity.EVMCall, error) {
	txc := tx.Common()
	call := entity.EVMCall{From: txc.Coin.Address, To: txc.To, Value: entity.TxAmount(tx)}

	if swap, ok := asSwap(tx); ok {
		call.Data = swap.CallData
		return call, nil
	}
	if !txc.Coin.IsNativeToken {
		data, err := packERC20Transfer(txc.To, entity.TxAmount(tx))
		if err != nil {
			return entity.EVMCall{}, err
		}
		call.To = txc.Coin.ContractAddress
		call.Value = new(big.Int)
		call.Data = data
		return call, nil
	}
	if memo := entity.TxMemo(tx); memo != "" {
		call.Data = []byte(memo)
	}
	return call, nil
}

// CalculateDefaultFees implements port.FeeStrategy without RPC calls.
func (s *evmFeeStrategy) CalculateDefaultFees(tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain, err := checkStandard(s.logger, tx, entity.StandardEVM)
	if err != nil {
		return nil, err
	}
	price, ok := s.defaults.GasPrice(chain)
	if !ok {
		return nil, fmt.Errorf("no default gas price for %s", chain)
	}
	limit := big.NewInt(defaultGasLimit(tx))

	if chain.SupportsLegacyGas() {
		return entity.GasFees{Price: price, Limit: limit, Amount: new(big.Int).Mul(price, limit)}, nil
	}
	priority := new(big.Int).Set(priorityFloor(chain))
	maxFee := new(big.Int).Add(price, priority)
	return entity.Eip1559{
		Limit:                limit,
		NetworkPrice:         price,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: priority,
		L1DataFee:            new(big.Int),
		Amount:               new(big.Int).Mul(maxFee, limit),
	}, nil
}

func defaultGasLimit(tx entity.BlockchainTransaction) int64 {
	if swap, ok := asSwap(tx); ok {
		if swap.Limit > 0 {
			return int64(swap.Limit)
		}
		return defaultSwapGasLimit
	}
	switch {
	case entity.TxChain(tx) == entity.Arbitrum:
		return defaultArbitrumTransferLimit
	case tx.Common().Coin.IsNativeToken:
		return defaultCoinTransferGasLimit
	default:
		return defaultTokenTransferGasLimit
	}
}

func asSwap(tx entity.BlockchainTransaction) (entity.Swap, bool) {
	switch t := tx.(type) {
	case entity.Swap:
		return t, true
	case *entity.Swap:
		return *t, true
	default:
		return entity.Swap{}, false
	}
}
