package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	feeHistoryBlocks     = 10
	feeHistoryPercentile = 5
)

// gasPriceOracleAddress is the OP-stack predeploy exposing the L1 data fee.
var gasPriceOracleAddress = common.HexToAddress("0x420000000000000000000000000000000000000F")

// GasPriceOracle ABI minimal part for getL1Fee
const gasPriceOracleABI = `[{"inputs":[{"internalType":"bytes","name":"_data","type":"bytes"}],"name":"getL1Fee","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

var (
	parsedOracleABI  abi.ABI
	parsedOracleOnce sync.Once
)

func initParsedOracleABI() {
	parsedOracleOnce.Do(func() {
		var err error
		parsedOracleABI, err = abi.JSON(strings.NewReader(gasPriceOracleABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse GasPriceOracle ABI: %v", err))
		}
	})
}

// EVMClient implements the port.EVMClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	endpoint       entity.ChainEndpoint
	rpcCallTimeout time.Duration
}

// NewEVMClient dials the first reachable URL of the endpoint.
func NewEVMClient(endpoint entity.ChainEndpoint, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (*EVMClient, error) {
	initParsedOracleABI()
	var lastErr error

	for _, rpcURL := range endpoint.URLs() {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)

		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: client, endpoint: endpoint, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	if lastErr == nil {
		lastErr = errors.New("no RPC URL configured")
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", endpoint.Chain, lastErr)
}

// Chain returns the chain this client talks to.
func (c *EVMClient) Chain() entity.Chain {
	return c.endpoint.Chain
}

func (c *EVMClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.rpcCallTimeout)
}

// GasPrice returns eth_gasPrice.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price on %s: %w", c.endpoint.Chain, err)
	}
	return price, nil
}

// BaseFee returns the base fee of the latest block.
func (c *EVMClient) BaseFee(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	header, err := c.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block on %s: %w", c.endpoint.Chain, err)
	}
	if header.BaseFee == nil {
		return nil, fmt.Errorf("latest block on %s has no base fee", c.endpoint.Chain)
	}
	return header.BaseFee, nil
}

// FeeHistoryRewards returns the first reward of each recent block, sorted ascending.
func (c *EVMClient) FeeHistoryRewards(ctx context.Context) ([]*big.Int, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	history, err := c.ethClient.FeeHistory(ctx, feeHistoryBlocks, nil, []float64{feeHistoryPercentile})
	if err != nil {
		return nil, fmt.Errorf("failed to get fee history on %s: %w", c.endpoint.Chain, err)
	}

	rewards := make([]*big.Int, 0, len(history.Reward))
	for _, blockRewards := range history.Reward {
		if len(blockRewards) > 0 && blockRewards[0] != nil {
			rewards = append(rewards, blockRewards[0])
		}
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].Cmp(rewards[j]) < 0 })
	return rewards, nil
}

// MaxPriorityFeePerGas returns eth_maxPriorityFeePerGas.
func (c *EVMClient) MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	tip, err := c.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get max priority fee on %s: %w", c.endpoint.Chain, err)
	}
	return tip, nil
}

// EstimateGas returns eth_estimateGas for the call.
func (c *EVMClient) EstimateGas(ctx context.Context, call entity.EVMCall) (uint64, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	msg := ethereum.CallMsg{
		From:  common.HexToAddress(call.From),
		Value: call.Value,
		Data:  call.Data,
	}
	if call.To != "" {
		to := common.HexToAddress(call.To)
		msg.To = &to
	}

	gas, err := c.ethClient.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas on %s: %w", c.endpoint.Chain, err)
	}
	return gas, nil
}

// L1DataFee asks the GasPriceOracle predeploy for the L1 fee of data.
func (c *EVMClient) L1DataFee(ctx context.Context, data []byte) (*big.Int, error) {
	initParsedOracleABI()
	input, err := parsedOracleABI.Pack("getL1Fee", data)
	if err != nil {
		return nil, fmt.Errorf("failed to pack getL1Fee: %w", err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	out, err := c.ethClient.CallContract(ctx, ethereum.CallMsg{To: &gasPriceOracleAddress, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call getL1Fee on %s: %w", c.endpoint.Chain, err)
	}
	unpacked, err := parsedOracleABI.Unpack("getL1Fee", out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getL1Fee result on %s: %w", c.endpoint.Chain, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("getL1Fee returned no data on %s", c.endpoint.Chain)
	}
	fee, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected getL1Fee result type %T", unpacked[0])
	}
	return fee, nil
}

// TransactionReceipt returns nil without error while the transaction is not mined.
func (c *EVMClient) TransactionReceipt(ctx context.Context, txHash string) (*entity.EVMReceipt, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	receipt, err := c.ethClient.TransactionReceipt(ctx, common.HexToHash(txHash))
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s on %s: %w", txHash, c.endpoint.Chain, err)
	}

	out := &entity.EVMReceipt{Status: receipt.Status, GasUsed: receipt.GasUsed}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out, nil
}

// TransactionKnown reports whether the node knows the hash.
func (c *EVMClient) TransactionKnown(ctx context.Context, txHash string) (bool, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	_, _, err := c.ethClient.TransactionByHash(ctx, common.HexToHash(txHash))
	if errors.Is(err, ethereum.NotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get transaction %s on %s: %w", txHash, c.endpoint.Chain, err)
	}
	return true, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}

var _ port.EVMClient = (*EVMClient)(nil)
