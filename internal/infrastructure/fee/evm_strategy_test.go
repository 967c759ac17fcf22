package fee

import (
	"context"
	"math/big"
	"testing"

	"fee_tracker/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	evmRecipient = "0x1111111111111111111111111111111111111111"
	usdcContract = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func ascendingRewards() []*big.Int {
	return []*big.Int{gweiInt(1), gweiInt(2), gweiInt(3), gweiInt(4), gweiInt(5)}
}

func newEVMStrategy(clients ...*mockEVMClient) *evmFeeStrategy {
	provider := &mockEVMProvider{clients: map[entity.Chain]*mockEVMClient{}}
	for _, c := range clients {
		provider.clients[c.chain] = c
	}
	return NewEVMFeeStrategy(provider, NewDefaultFeeTable(), nopLogger).(*evmFeeStrategy)
}

func TestEVMFeeStrategy_EIP1559Transfer(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:    entity.Ethereum,
		baseFee:  gweiInt(20),
		rewards:  ascendingRewards(),
		estimate: 21000,
	}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.Ethereum, evmRecipient))
	require.NoError(t, err)

	eip, ok := fee.(entity.Eip1559)
	require.True(t, ok, "expected Eip1559, got %T", fee)
	assert.Equal(t, big.NewInt(21000), eip.Limit)
	assert.Equal(t, gweiInt(20), eip.NetworkPrice)
	assert.Equal(t, gweiInt(3), eip.MaxPriorityFeePerGas)
	assert.Equal(t, gweiInt(23), eip.MaxFeePerGas)
	assert.Equal(t, 0, eip.L1DataFee.Sign())

	want, _ := new(big.Int).SetString("483000000000000", 10)
	assert.Equal(t, want, eip.Amount)
}

func TestEVMFeeStrategy_PriorityFloors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain entity.Chain
		want  *big.Int
	}{
		{name: "polygon floor above median", chain: entity.Polygon, want: gweiInt(30)},
		{name: "l1 median", chain: entity.Ethereum, want: gweiInt(3)},
		{name: "op stack floor above max", chain: entity.Base, want: gweiInt(20)},
		{name: "arbitrum has no tip", chain: entity.Arbitrum, want: new(big.Int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, selectPriorityFee(tt.chain, ascendingRewards()))
		})
	}
}

func TestEVMFeeStrategy_EmptyRewardsUseFloor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gweiInt(1), selectPriorityFee(entity.Ethereum, nil))
	assert.Equal(t, gweiInt(30), selectPriorityFee(entity.Polygon, nil))
}

func TestEVMFeeStrategy_ArbitrumZeroTip(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:       entity.Arbitrum,
		baseFee:     gweiInt(1),
		rewards:     ascendingRewards(),
		maxPriority: gweiInt(2),
		estimate:    21000,
	}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.Arbitrum, evmRecipient))
	require.NoError(t, err)
	eip, ok := fee.(entity.Eip1559)
	require.True(t, ok, "expected Eip1559, got %T", fee)
	assert.Equal(t, 0, eip.MaxPriorityFeePerGas.Sign())
	assert.Equal(t, gweiInt(1), eip.MaxFeePerGas)
	assert.Equal(t, new(big.Int).Mul(gweiInt(1), big.NewInt(21000)), eip.Amount)
	assert.Zero(t, selectPriorityFee(entity.Arbitrum, nil).Sign())
}

func TestEVMFeeStrategy_PolygonFloor(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:    entity.Polygon,
		baseFee:  gweiInt(100),
		rewards:  ascendingRewards(),
		estimate: 21000,
	}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.Polygon, evmRecipient))
	require.NoError(t, err)
	eip := fee.(entity.Eip1559)
	assert.Equal(t, gweiInt(30), eip.MaxPriorityFeePerGas)
	assert.Equal(t, gweiInt(130), eip.MaxFeePerGas)
}

func TestEVMFeeStrategy_AvalancheUsesNodeTip(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:       entity.Avalanche,
		baseFee:     gweiInt(25),
		maxPriority: gweiInt(2),
		estimate:    21000,
	}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.Avalanche, evmRecipient))
	require.NoError(t, err)
	assert.Equal(t, gweiInt(2), fee.(entity.Eip1559).MaxPriorityFeePerGas)
}

func TestEVMFeeStrategy_LegacyGas(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{chain: entity.BscChain, gasPrice: gweiInt(3), estimate: 21000}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.BscChain, evmRecipient))
	require.NoError(t, err)

	gas, ok := fee.(entity.GasFees)
	require.True(t, ok, "expected GasFees, got %T", fee)
	assert.Equal(t, big.NewInt(21000), gas.Limit)
	assert.Equal(t, new(big.Int).Mul(gweiInt(3), big.NewInt(21000)), gas.Amount)
}

func TestEVMFeeStrategy_TokenTransferInflatesEstimate(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:    entity.Ethereum,
		baseFee:  gweiInt(10),
		rewards:  ascendingRewards(),
		estimate: 50000,
	}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), tokenTransfer(entity.Ethereum, usdcContract, evmRecipient))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(70000), fee.(entity.Eip1559).Limit)

	assert.Equal(t, usdcContract, client.lastCall.To)
	assert.Equal(t, 0, client.lastCall.Value.Sign())
	require.Len(t, client.lastCall.Data, 4+32+32)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, client.lastCall.Data[:4])
}

func TestEVMFeeStrategy_SwapUsesProvidedLimit(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:   entity.Ethereum,
		baseFee: gweiInt(10),
		rewards: ascendingRewards(),
	}
	s := newEVMStrategy(client)

	swap := entity.Swap{
		TxCommon: nativeTransfer(entity.Ethereum, evmRecipient).TxCommon,
		CallData: []byte{0x01, 0x02},
		Limit:    250000,
	}
	fee, err := s.CalculateFees(context.Background(), swap)
	require.NoError(t, err)

	eip := fee.(entity.Eip1559)
	assert.Zero(t, client.estimateCalls)
	assert.Equal(t, big.NewInt(250000), eip.Limit)
	assert.Equal(t, gweiInt(11), eip.NetworkPrice)
	assert.Equal(t, gweiInt(14), eip.MaxFeePerGas)
}

func TestEVMFeeStrategy_OPStackAddsL1Fee(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{
		chain:    entity.Base,
		baseFee:  big.NewInt(1000),
		rewards:  ascendingRewards(),
		estimate: 21000,
		l1Fee:    big.NewInt(5000000),
	}
	s := newEVMStrategy(client)

	tx := nativeTransfer(entity.Base, evmRecipient)
	tx.EstimationPayload = []byte{0xde, 0xad}
	fee, err := s.CalculateFees(context.Background(), tx)
	require.NoError(t, err)

	eip := fee.(entity.Eip1559)
	assert.Equal(t, big.NewInt(5000000), eip.L1DataFee)
	assert.Equal(t, []byte{0xde, 0xad}, client.l1Data)

	network := new(big.Int).Mul(new(big.Int).Add(big.NewInt(1000), gweiInt(20)), big.NewInt(21000))
	assert.Equal(t, new(big.Int).Add(network, big.NewInt(5000000)), eip.Amount)
	assert.Equal(t, network, eip.NetworkAmount())
}

func TestEVMFeeStrategy_ZkSyncHasNoL1Fee(t *testing.T) {
	t.Parallel()

	client := &mockEVMClient{chain: entity.ZkSync, baseFee: big.NewInt(1000), rewards: ascendingRewards(), estimate: 21000}
	s := newEVMStrategy(client)

	fee, err := s.CalculateFees(context.Background(), nativeTransfer(entity.ZkSync, evmRecipient))
	require.NoError(t, err)
	assert.Equal(t, 0, fee.(entity.Eip1559).L1DataFee.Sign())
	assert.Nil(t, client.l1Data)
}

func TestEVMFeeStrategy_Defaults(t *testing.T) {
	t.Parallel()

	s := newEVMStrategy()

	fee, err := s.CalculateDefaultFees(nativeTransfer(entity.Ethereum, evmRecipient))
	require.NoError(t, err)
	eip := fee.(entity.Eip1559)
	assert.Equal(t, big.NewInt(defaultCoinTransferGasLimit), eip.Limit)
	assert.Equal(t, new(big.Int).Mul(gweiInt(31), big.NewInt(defaultCoinTransferGasLimit)), eip.Amount)

	fee, err = s.CalculateDefaultFees(tokenTransfer(entity.BscChain, usdcContract, evmRecipient))
	require.NoError(t, err)
	gas := fee.(entity.GasFees)
	assert.Equal(t, new(big.Int).Mul(gweiInt(3), big.NewInt(defaultTokenTransferGasLimit)), gas.Amount)

	fee, err = s.CalculateDefaultFees(nativeTransfer(entity.Arbitrum, evmRecipient))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(defaultArbitrumTransferLimit), fee.(entity.Eip1559).Limit)
}

func TestEVMFeeStrategy_StandardMismatch(t *testing.T) {
	t.Parallel()

	s := newEVMStrategy()

	_, err := s.CalculateFees(context.Background(), nativeTransfer(entity.Bitcoin, "bc1q"))
	require.ErrorIs(t, err, entity.ErrStandardMismatch)

	_, err = s.CalculateDefaultFees(nativeTransfer(entity.Solana, "addr"))
	require.ErrorIs(t, err, entity.ErrStandardMismatch)
}

func TestInflateGasLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, big.NewInt(21000), InflateGasLimit(21000))
	assert.Equal(t, big.NewInt(29428), InflateGasLimit(21020))
	assert.Equal(t, big.NewInt(140000), InflateGasLimit(100000))
	assert.Equal(t, big.NewInt(1), InflateGasLimit(1))
}
