package port

import (
	"context"
	"math/big"

	"fee_tracker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// EVMClient defines the read-only calls made against an EVM-compatible node.
type EVMClient interface {
	Chain() entity.Chain
	GasPrice(ctx context.Context) (*big.Int, error)
	BaseFee(ctx context.Context) (*big.Int, error)
	// FeeHistoryRewards returns the 5th percentile reward of recent blocks, sorted ascending.
	FeeHistoryRewards(ctx context.Context) ([]*big.Int, error)
	MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call entity.EVMCall) (uint64, error)
	// L1DataFee returns the layer-1 data-posting fee for data on OP-stack chains.
	L1DataFee(ctx context.Context, data []byte) (*big.Int, error)
	// TransactionReceipt returns nil without error while the transaction is not mined.
	TransactionReceipt(ctx context.Context, txHash string) (*entity.EVMReceipt, error)
	// TransactionKnown reports whether the node knows the hash (mined or in its mempool).
	TransactionKnown(ctx context.Context, txHash string) (bool, error)
}

// EVMClientProvider defines the interface for providing EVM clients.
type EVMClientProvider interface {
	GetClient(chain entity.Chain) (EVMClient, error)
}

// UTXOClient reads fee rates and transactions of UTXO chains.
type UTXOClient interface {
	// SuggestedFeeRate is the indexer's suggested rate in satoshi per vbyte.
	SuggestedFeeRate(ctx context.Context, chain entity.Chain) (*big.Int, error)
	// SmartFeeRate asks a full node; returns entity.ErrNotConfigured when no node is set up for the chain.
	SmartFeeRate(ctx context.Context, chain entity.Chain, confTarget int) (*big.Int, error)
	// Transaction returns nil without error when the hash is unknown.
	Transaction(ctx context.Context, chain entity.Chain, txHash string) (*entity.UTXOTransaction, error)
}

// CardanoClient reads Cardano protocol parameters and transactions.
type CardanoClient interface {
	ProtocolParameters(ctx context.Context) (entity.CardanoProtocolParams, error)
	Transaction(ctx context.Context, txHash string) (*entity.CardanoTransaction, error)
}

// CosmosClient reads Cosmos-SDK nodes, including THORChain and MayaChain.
type CosmosClient interface {
	// MinimumGasPrice returns the node's minimum gas price in the chain's fee denom.
	MinimumGasPrice(ctx context.Context, chain entity.Chain) (decimal.Decimal, error)
	// TxResponse returns nil without error when the node has not indexed the hash.
	TxResponse(ctx context.Context, chain entity.Chain, txHash string) (*entity.CosmosTxResult, error)
}

// ThorChainClient reads THORChain network constants.
type ThorChainClient interface {
	NativeTxFee(ctx context.Context) (*big.Int, error)
}

// SolanaClient reads Solana fees and signature statuses.
type SolanaClient interface {
	RecentPrioritizationFees(ctx context.Context, accounts []string) ([]uint64, error)
	// SignatureStatus returns nil without error when the signature is unknown.
	SignatureStatus(ctx context.Context, signature string) (*entity.SolanaSignatureStatus, error)
}

// SuiClient reads Sui gas prices and transaction effects.
type SuiClient interface {
	ReferenceGasPrice(ctx context.Context) (*big.Int, error)
	DryRunGas(ctx context.Context, txBytes []byte) (*entity.SuiGasCost, error)
	TransactionEffects(ctx context.Context, digest string) (*entity.SuiTransactionEffects, error)
}

// TonClient reads Ton fee estimates and message outcomes.
type TonClient interface {
	EstimateFee(ctx context.Context, address string, body []byte) (*big.Int, error)
	TransactionByMessage(ctx context.Context, msgHash string) (*entity.TonTransaction, error)
}

// PolkadotClient reads Polkadot fee info and indexed extrinsics.
type PolkadotClient interface {
	PartialFee(ctx context.Context, extrinsic []byte) (*big.Int, error)
	Extrinsic(ctx context.Context, txHash string) (*entity.PolkadotExtrinsic, error)
}

// RippleClient reads rippled ledger state.
type RippleClient interface {
	BaseFee(ctx context.Context) (*big.Int, error)
	ReserveBase(ctx context.Context) (*big.Int, error)
	AccountExists(ctx context.Context, address string) (bool, error)
	Transaction(ctx context.Context, txHash string) (*entity.RippleTransaction, error)
}

// TronClient reads Tron resources, chain parameters and receipts.
type TronClient interface {
	ChainParameters(ctx context.Context) (entity.TronChainParameters, error)
	AccountResource(ctx context.Context, address string) (entity.TronAccountResource, error)
	AccountExists(ctx context.Context, address string) (bool, error)
	SimulateTransfer(ctx context.Context, owner, contract, to string, amount *big.Int) (entity.TronSimulation, error)
	ContractEnergyFactor(ctx context.Context, contract string) (int64, error)
	TransactionInfo(ctx context.Context, txID string) (*entity.TronTransactionInfo, error)
}

// ChainEndpointProvider defines the interface for providing chain endpoints.
type ChainEndpointProvider interface {
	// GetAllEndpoints returns all known endpoints.
	GetAllEndpoints() []entity.ChainEndpoint

	// GetEndpoint returns the endpoint of a chain and true if found.
	GetEndpoint(chain entity.Chain) (entity.ChainEndpoint, bool)
}
