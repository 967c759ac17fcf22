package entity

import "math/big"

// EVMCall is the message used for gas estimation.
type EVMCall struct {
	From  string
	To    string
	Value *big.Int
	Data  []byte
}

// EVMReceipt is the part of a transaction receipt the status provider needs.
type EVMReceipt struct {
	Status      uint64
	BlockNumber uint64
	GasUsed     uint64
}

// UTXOTransaction is an indexer view of a UTXO transaction. BlockID is -1 while in the mempool.
type UTXOTransaction struct {
	BlockID int64
	Fee     int64
}

// CardanoProtocolParams holds the linear fee coefficients: fee = MinFeeA * size + MinFeeB.
type CardanoProtocolParams struct {
	MinFeeA uint64
	MinFeeB uint64
}

// CardanoTransaction is an indexed Cardano transaction.
type CardanoTransaction struct {
	BlockHeight   uint64
	ValidContract bool
}

// CosmosTxResult is the tx_response of a Cosmos-SDK transaction.
type CosmosTxResult struct {
	Height    int64
	Code      uint32
	Codespace string
	RawLog    string
}

// SolanaSignatureStatus is the status of a Solana signature. Err is the raw error object, nil on success.
type SolanaSignatureStatus struct {
	Slot               uint64
	ConfirmationStatus string
	Err                any
}

// SuiGasCost is the gas summary of a dry run.
type SuiGasCost struct {
	ComputationCost *big.Int
	StorageCost     *big.Int
	StorageRebate   *big.Int
}

// SuiTransactionEffects is the execution status of a Sui transaction block.
type SuiTransactionEffects struct {
	Status string // "success" or "failure"
	Error  string
}

// TonTransaction is the execution outcome of a Ton message.
type TonTransaction struct {
	Aborted        bool
	ComputeSuccess bool
	ExitCode       int
}

// PolkadotExtrinsic is an indexed Polkadot extrinsic.
type PolkadotExtrinsic struct {
	Success     bool
	Finalized   bool
	ErrorModule string
	ErrorName   string
}

// RippleTransaction is a rippled tx lookup result.
type RippleTransaction struct {
	Validated bool
	Result    string // engine result code, e.g. tesSUCCESS
}

// TronChainParameters are the network prices used by the Tron fee model, in sun.
type TronChainParameters struct {
	BandwidthPrice                int64 // getTransactionFee
	EnergyPrice                   int64 // getEnergyFee
	CreateAccountFee              int64 // getCreateAccountFee
	CreateNewAccountFeeInContract int64 // getCreateNewAccountFeeInSystemContract
	MemoFee                       int64 // getMemoFee
	MaxEnergyFactor               int64 // getMaxEnergyFactor
}

// TronAccountResource is the bandwidth and energy allowance of an account.
type TronAccountResource struct {
	FreeNetLimit int64
	FreeNetUsed  int64
	NetLimit     int64
	NetUsed      int64
	EnergyLimit  int64
	EnergyUsed   int64
}

// AvailableBandwidth returns free plus staked bandwidth left.
func (r TronAccountResource) AvailableBandwidth() int64 {
	return (r.FreeNetLimit - r.FreeNetUsed) + (r.NetLimit - r.NetUsed)
}

// AvailableEnergy returns staked energy left, never negative.
func (r TronAccountResource) AvailableEnergy() int64 {
	if left := r.EnergyLimit - r.EnergyUsed; left > 0 {
		return left
	}
	return 0
}

// TronSimulation is the outcome of a triggerconstantcontract call.
type TronSimulation struct {
	EnergyUsed    int64
	EnergyPenalty int64
}

// TronTransactionInfo is the receipt view of a Tron transaction.
type TronTransactionInfo struct {
	BlockNumber int64
	Result      string // receipt.result, empty for plain TRX transfers
	ResMessage  string
}
