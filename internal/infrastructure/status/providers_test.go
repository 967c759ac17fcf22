package status

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const txHash = "0xabc"

var errTransport = errors.New("connection reset")

type stubEVMClient struct {
	port.EVMClient
	receipt *entity.EVMReceipt
	known   bool
	err     error
}

func (c *stubEVMClient) TransactionReceipt(context.Context, string) (*entity.EVMReceipt, error) {
	return c.receipt, c.err
}

func (c *stubEVMClient) TransactionKnown(context.Context, string) (bool, error) {
	return c.known, c.err
}

type stubEVMProvider struct{ client *stubEVMClient }

func (p stubEVMProvider) GetClient(chain entity.Chain) (port.EVMClient, error) {
	if chain.Standard() != entity.StandardEVM {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, chain)
	}
	return p.client, nil
}

func TestEVMStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		client *stubEVMClient
		want   entity.TransactionResult
	}{
		{name: "successful receipt", client: &stubEVMClient{receipt: &entity.EVMReceipt{Status: 1, BlockNumber: 10}}, want: entity.Confirmed{}},
		{name: "reverted receipt", client: &stubEVMClient{receipt: &entity.EVMReceipt{Status: 0}}, want: entity.Failed{Reason: "execution reverted"}},
		{name: "in mempool", client: &stubEVMClient{known: true}, want: entity.Pending{}},
		{name: "unknown hash", client: &stubEVMClient{}, want: entity.NotFound{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEVMStatusProvider(stubEVMProvider{client: tt.client}, logger.NewNop())
			got, err := p.CheckStatus(context.Background(), txHash, entity.Ethereum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("transport error", func(t *testing.T) {
		p := NewEVMStatusProvider(stubEVMProvider{client: &stubEVMClient{err: errTransport}}, logger.NewNop())
		_, err := p.CheckStatus(context.Background(), txHash, entity.Polygon)
		require.ErrorIs(t, err, errTransport)
	})
}

type stubUTXOClient struct {
	port.UTXOClient
	tx  *entity.UTXOTransaction
	err error
}

func (c stubUTXOClient) Transaction(context.Context, entity.Chain, string) (*entity.UTXOTransaction, error) {
	return c.tx, c.err
}

func TestUTXOStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tx   *entity.UTXOTransaction
		want entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "mempool", tx: &entity.UTXOTransaction{BlockID: -1}, want: entity.Pending{}},
		{name: "mined", tx: &entity.UTXOTransaction{BlockID: 840000}, want: entity.Confirmed{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewUTXOStatusProvider(stubUTXOClient{tx: tt.tx}).CheckStatus(context.Background(), txHash, entity.Bitcoin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubCardanoClient struct {
	port.CardanoClient
	tx *entity.CardanoTransaction
}

func (c stubCardanoClient) Transaction(context.Context, string) (*entity.CardanoTransaction, error) {
	return c.tx, nil
}

func TestCardanoStatusProvider(t *testing.T) {
	t.Parallel()

	got, err := NewCardanoStatusProvider(stubCardanoClient{}).CheckStatus(context.Background(), txHash, entity.Cardano)
	require.NoError(t, err)
	assert.Equal(t, entity.NotFound{}, got)

	got, err = NewCardanoStatusProvider(stubCardanoClient{tx: &entity.CardanoTransaction{ValidContract: true}}).CheckStatus(context.Background(), txHash, entity.Cardano)
	require.NoError(t, err)
	assert.Equal(t, entity.Confirmed{}, got)

	got, err = NewCardanoStatusProvider(stubCardanoClient{tx: &entity.CardanoTransaction{}}).CheckStatus(context.Background(), txHash, entity.Cardano)
	require.NoError(t, err)
	assert.Equal(t, entity.Failed{Reason: "script validation failed"}, got)
}

type stubCosmosClient struct {
	resp  *entity.CosmosTxResult
	chain entity.Chain
}

func (c *stubCosmosClient) MinimumGasPrice(context.Context, entity.Chain) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (c *stubCosmosClient) TxResponse(_ context.Context, chain entity.Chain, _ string) (*entity.CosmosTxResult, error) {
	c.chain = chain
	return c.resp, nil
}

func TestCosmosStatusProvider(t *testing.T) {
	t.Parallel()

	p := NewCosmosStatusProvider(&stubCosmosClient{})
	assert.ElementsMatch(t, []entity.TokenStandard{entity.StandardCosmos, entity.StandardThorChain}, p.Standards())

	tests := []struct {
		name string
		resp *entity.CosmosTxResult
		want entity.TransactionResult
	}{
		{name: "not indexed", want: entity.NotFound{}},
		{name: "success", resp: &entity.CosmosTxResult{Height: 100}, want: entity.Confirmed{}},
		{name: "raw log", resp: &entity.CosmosTxResult{Height: 100, Code: 5, Codespace: "sdk", RawLog: "insufficient funds"}, want: entity.Failed{Reason: "insufficient funds"}},
		{name: "codespace", resp: &entity.CosmosTxResult{Height: 100, Code: 11, Codespace: "sdk"}, want: entity.Failed{Reason: "sdk/11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubCosmosClient{resp: tt.resp}
			got, err := NewCosmosStatusProvider(client).CheckStatus(context.Background(), txHash, entity.ThorChain)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, entity.ThorChain, client.chain)
		})
	}
}

type stubSolanaClient struct {
	port.SolanaClient
	status *entity.SolanaSignatureStatus
}

func (c stubSolanaClient) SignatureStatus(context.Context, string) (*entity.SolanaSignatureStatus, error) {
	return c.status, nil
}

func TestSolanaStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status *entity.SolanaSignatureStatus
		want   entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "processed without error", status: &entity.SolanaSignatureStatus{ConfirmationStatus: "processed"}, want: entity.Confirmed{}},
		{
			name: "instruction error",
			status: &entity.SolanaSignatureStatus{
				ConfirmationStatus: "finalized",
				Err:                map[string]any{"InstructionError": []any{0, "InvalidAccountData"}},
			},
			want: entity.Failed{Reason: `{"InstructionError":[0,"InvalidAccountData"]}`},
		},
		{name: "string error", status: &entity.SolanaSignatureStatus{Err: "AccountInUse"}, want: entity.Failed{Reason: "AccountInUse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSolanaStatusProvider(stubSolanaClient{status: tt.status}).CheckStatus(context.Background(), "sig", entity.Solana)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubSuiClient struct {
	port.SuiClient
	effects *entity.SuiTransactionEffects
}

func (c stubSuiClient) TransactionEffects(context.Context, string) (*entity.SuiTransactionEffects, error) {
	return c.effects, nil
}

func TestSuiStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		effects *entity.SuiTransactionEffects
		want    entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "success", effects: &entity.SuiTransactionEffects{Status: "success"}, want: entity.Confirmed{}},
		{name: "failure", effects: &entity.SuiTransactionEffects{Status: "failure", Error: "InsufficientGas"}, want: entity.Failed{Reason: "InsufficientGas"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSuiStatusProvider(stubSuiClient{effects: tt.effects}).CheckStatus(context.Background(), "digest", entity.Sui)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubTonClient struct {
	port.TonClient
	tx *entity.TonTransaction
}

func (c stubTonClient) TransactionByMessage(context.Context, string) (*entity.TonTransaction, error) {
	return c.tx, nil
}

func TestTonStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tx   *entity.TonTransaction
		want entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "success", tx: &entity.TonTransaction{ComputeSuccess: true}, want: entity.Confirmed{}},
		{name: "aborted", tx: &entity.TonTransaction{Aborted: true, ComputeSuccess: true, ExitCode: 37}, want: entity.Failed{Reason: "aborted, exit code 37"}},
		{name: "compute failed", tx: &entity.TonTransaction{ExitCode: 9}, want: entity.Failed{Reason: "aborted, exit code 9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTonStatusProvider(stubTonClient{tx: tt.tx}).CheckStatus(context.Background(), "msg", entity.Ton)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubPolkadotClient struct {
	port.PolkadotClient
	ext *entity.PolkadotExtrinsic
}

func (c stubPolkadotClient) Extrinsic(context.Context, string) (*entity.PolkadotExtrinsic, error) {
	return c.ext, nil
}

func TestPolkadotStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  *entity.PolkadotExtrinsic
		want entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "not finalized", ext: &entity.PolkadotExtrinsic{Success: true}, want: entity.Pending{}},
		{name: "success", ext: &entity.PolkadotExtrinsic{Success: true, Finalized: true}, want: entity.Confirmed{}},
		{
			name: "module error",
			ext:  &entity.PolkadotExtrinsic{Finalized: true, ErrorModule: "Balances", ErrorName: "InsufficientBalance"},
			want: entity.Failed{Reason: "Balances.InsufficientBalance"},
		},
		{name: "bare failure", ext: &entity.PolkadotExtrinsic{Finalized: true}, want: entity.Failed{Reason: "extrinsic failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPolkadotStatusProvider(stubPolkadotClient{ext: tt.ext}).CheckStatus(context.Background(), txHash, entity.Polkadot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubRippleClient struct {
	port.RippleClient
	tx *entity.RippleTransaction
}

func (c stubRippleClient) Transaction(context.Context, string) (*entity.RippleTransaction, error) {
	return c.tx, nil
}

func TestRippleStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tx   *entity.RippleTransaction
		want entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "not validated", tx: &entity.RippleTransaction{Result: "tesSUCCESS"}, want: entity.Pending{}},
		{name: "success", tx: &entity.RippleTransaction{Validated: true, Result: "tesSUCCESS"}, want: entity.Confirmed{}},
		{name: "claimed fee", tx: &entity.RippleTransaction{Validated: true, Result: "tecUNFUNDED_PAYMENT"}, want: entity.Failed{Reason: "tecUNFUNDED_PAYMENT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRippleStatusProvider(stubRippleClient{tx: tt.tx}).CheckStatus(context.Background(), txHash, entity.Ripple)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubTronClient struct {
	port.TronClient
	info *entity.TronTransactionInfo
	err  error
}

func (c stubTronClient) TransactionInfo(context.Context, string) (*entity.TronTransactionInfo, error) {
	return c.info, c.err
}

func TestTronStatusProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info *entity.TronTransactionInfo
		want entity.TransactionResult
	}{
		{name: "unknown", want: entity.NotFound{}},
		{name: "not in block", info: &entity.TronTransactionInfo{}, want: entity.Pending{}},
		{name: "trx transfer", info: &entity.TronTransactionInfo{BlockNumber: 60000000}, want: entity.Confirmed{}},
		{name: "contract success", info: &entity.TronTransactionInfo{BlockNumber: 60000000, Result: "SUCCESS"}, want: entity.Confirmed{}},
		{
			name: "out of energy",
			info: &entity.TronTransactionInfo{BlockNumber: 60000000, Result: "OUT_OF_ENERGY", ResMessage: "Not enough energy"},
			want: entity.Failed{Reason: "OUT_OF_ENERGY Not enough energy"},
		},
		{name: "revert", info: &entity.TronTransactionInfo{BlockNumber: 60000000, Result: "REVERT"}, want: entity.Failed{Reason: "REVERT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTronStatusProvider(stubTronClient{info: tt.info}).CheckStatus(context.Background(), txHash, entity.Tron)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("transport error", func(t *testing.T) {
		_, err := NewTronStatusProvider(stubTronClient{err: errTransport}).CheckStatus(context.Background(), txHash, entity.Tron)
		require.ErrorIs(t, err, errTransport)
	})
}
