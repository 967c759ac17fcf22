package fee

import (
	"context"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/logger"

	"github.com/shopspring/decimal"
)

var nopLogger = logger.NewNop()

func gweiInt(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(gwei))
}

type mockEVMClient struct {
	chain       entity.Chain
	gasPrice    *big.Int
	baseFee     *big.Int
	rewards     []*big.Int
	maxPriority *big.Int
	estimate    uint64
	l1Fee       *big.Int
	err         error

	estimateCalls int
	l1Data        []byte
	lastCall      entity.EVMCall
}

func (m *mockEVMClient) Chain() entity.Chain { return m.chain }

func (m *mockEVMClient) GasPrice(context.Context) (*big.Int, error) { return m.gasPrice, m.err }

func (m *mockEVMClient) BaseFee(context.Context) (*big.Int, error) { return m.baseFee, m.err }

func (m *mockEVMClient) FeeHistoryRewards(context.Context) ([]*big.Int, error) {
	return m.rewards, m.err
}

func (m *mockEVMClient) MaxPriorityFeePerGas(context.Context) (*big.Int, error) {
	return m.maxPriority, m.err
}

func (m *mockEVMClient) EstimateGas(_ context.Context, call entity.EVMCall) (uint64, error) {
	m.estimateCalls++
	m.lastCall = call
	return m.estimate, m.err
}

func (m *mockEVMClient) L1DataFee(_ context.Context, data []byte) (*big.Int, error) {
	m.l1Data = data
	if m.l1Fee == nil {
		return nil, fmt.Errorf("unexpected L1 fee call on %s", m.chain)
	}
	return m.l1Fee, m.err
}

func (m *mockEVMClient) TransactionReceipt(context.Context, string) (*entity.EVMReceipt, error) {
	return nil, m.err
}

func (m *mockEVMClient) TransactionKnown(context.Context, string) (bool, error) {
	return false, m.err
}

type mockEVMProvider struct {
	clients map[entity.Chain]*mockEVMClient
}

func (p *mockEVMProvider) GetClient(chain entity.Chain) (port.EVMClient, error) {
	c, ok := p.clients[chain]
	if !ok {
		return nil, fmt.Errorf("no client for %s", chain)
	}
	return c, nil
}

type mockUTXOClient struct {
	suggested *big.Int
	smart     *big.Int
	smartErr  error
	err       error
}

func (m *mockUTXOClient) SuggestedFeeRate(context.Context, entity.Chain) (*big.Int, error) {
	return m.suggested, m.err
}

func (m *mockUTXOClient) SmartFeeRate(context.Context, entity.Chain, int) (*big.Int, error) {
	return m.smart, m.smartErr
}

func (m *mockUTXOClient) Transaction(context.Context, entity.Chain, string) (*entity.UTXOTransaction, error) {
	return nil, m.err
}

type mockCardanoClient struct {
	params entity.CardanoProtocolParams
	err    error
}

func (m *mockCardanoClient) ProtocolParameters(context.Context) (entity.CardanoProtocolParams, error) {
	return m.params, m.err
}

func (m *mockCardanoClient) Transaction(context.Context, string) (*entity.CardanoTransaction, error) {
	return nil, m.err
}

type mockCosmosClient struct {
	price decimal.Decimal
	err   error
}

func (m *mockCosmosClient) MinimumGasPrice(context.Context, entity.Chain) (decimal.Decimal, error) {
	return m.price, m.err
}

func (m *mockCosmosClient) TxResponse(context.Context, entity.Chain, string) (*entity.CosmosTxResult, error) {
	return nil, m.err
}

type mockThorChainClient struct {
	fee   *big.Int
	err   error
	calls int
}

func (m *mockThorChainClient) NativeTxFee(context.Context) (*big.Int, error) {
	m.calls++
	return m.fee, m.err
}

type mockSolanaClient struct {
	fees     []uint64
	err      error
	accounts []string
}

func (m *mockSolanaClient) RecentPrioritizationFees(_ context.Context, accounts []string) ([]uint64, error) {
	m.accounts = accounts
	return m.fees, m.err
}

func (m *mockSolanaClient) SignatureStatus(context.Context, string) (*entity.SolanaSignatureStatus, error) {
	return nil, m.err
}

type mockSuiClient struct {
	refPrice *big.Int
	cost     *entity.SuiGasCost
	err      error
}

func (m *mockSuiClient) ReferenceGasPrice(context.Context) (*big.Int, error) {
	return m.refPrice, m.err
}

func (m *mockSuiClient) DryRunGas(context.Context, []byte) (*entity.SuiGasCost, error) {
	return m.cost, m.err
}

func (m *mockSuiClient) TransactionEffects(context.Context, string) (*entity.SuiTransactionEffects, error) {
	return nil, m.err
}

type mockTonClient struct {
	fee *big.Int
	err error
}

func (m *mockTonClient) EstimateFee(context.Context, string, []byte) (*big.Int, error) {
	return m.fee, m.err
}

func (m *mockTonClient) TransactionByMessage(context.Context, string) (*entity.TonTransaction, error) {
	return nil, m.err
}

type mockPolkadotClient struct {
	fee *big.Int
	err error
}

func (m *mockPolkadotClient) PartialFee(context.Context, []byte) (*big.Int, error) {
	return m.fee, m.err
}

func (m *mockPolkadotClient) Extrinsic(context.Context, string) (*entity.PolkadotExtrinsic, error) {
	return nil, m.err
}

type mockRippleClient struct {
	baseFee       *big.Int
	reserveBase   *big.Int
	accountExists bool
	err           error

	accountLookups int
}

func (m *mockRippleClient) BaseFee(context.Context) (*big.Int, error) { return m.baseFee, m.err }

func (m *mockRippleClient) ReserveBase(context.Context) (*big.Int, error) {
	return m.reserveBase, m.err
}

func (m *mockRippleClient) AccountExists(context.Context, string) (bool, error) {
	m.accountLookups++
	return m.accountExists, m.err
}

func (m *mockRippleClient) Transaction(context.Context, string) (*entity.RippleTransaction, error) {
	return nil, m.err
}

type mockTronClient struct {
	params        entity.TronChainParameters
	resource      entity.TronAccountResource
	accountExists bool
	simulation    entity.TronSimulation
	energyFactor  int64
	err           error
}

func (m *mockTronClient) ChainParameters(context.Context) (entity.TronChainParameters, error) {
	return m.params, m.err
}

func (m *mockTronClient) AccountResource(context.Context, string) (entity.TronAccountResource, error) {
	return m.resource, m.err
}

func (m *mockTronClient) AccountExists(context.Context, string) (bool, error) {
	return m.accountExists, m.err
}

func (m *mockTronClient) SimulateTransfer(context.Context, string, string, string, *big.Int) (entity.TronSimulation, error) {
	return m.simulation, m.err
}

func (m *mockTronClient) ContractEnergyFactor(context.Context, string) (int64, error) {
	return m.energyFactor, m.err
}

func (m *mockTronClient) TransactionInfo(context.Context, string) (*entity.TronTransactionInfo, error) {
	return nil, m.err
}

func nativeTransfer(chain entity.Chain, to string) entity.Transfer {
	coin := entity.NativeCoin(chain)
	coin.Address = "sender"
	return entity.Transfer{TxCommon: entity.TxCommon{Coin: coin, Amount: big.NewInt(1000), To: to}}
}

func tokenTransfer(chain entity.Chain, contract, to string) entity.Transfer {
	return entity.Transfer{TxCommon: entity.TxCommon{
		Coin: entity.Coin{
			Chain:           chain,
			Ticker:          "USDT",
			Decimals:        6,
			ContractAddress: contract,
			Address:         "sender",
		},
		Amount: big.NewInt(1000000),
		To:     to,
	}}
}
