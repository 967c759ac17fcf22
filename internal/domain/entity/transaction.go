package entity

import "math/big"

// VaultData identifies the signer context of a transaction. It never carries a private key.
type VaultData struct {
	VaultHexPublicKey string `json:"vaultHexPublicKey"`
	VaultHexChainCode string `json:"vaultHexChainCode"`
}

// TxCommon holds the fields shared by every transaction kind.
type TxCommon struct {
	Coin   Coin      `json:"coin"`
	Vault  VaultData `json:"vault"`
	Amount *big.Int  `json:"amount"`
	IsMax  bool      `json:"isMax"`
	To     string    `json:"to"`
	// EstimationPayload is an unsigned transaction built by the transaction builder,
	// used only by fee RPCs that simulate a full transaction.
	EstimationPayload []byte `json:"estimationPayload,omitempty"`
}

// Common returns the shared transaction fields.
func (c TxCommon) Common() TxCommon { return c }

// BlockchainTransaction is either a Transfer or a Swap.
type BlockchainTransaction interface {
	Common() TxCommon
	IsSwap() bool
	isBlockchainTransaction()
}

// Transfer moves an asset to a destination address.
type Transfer struct {
	TxCommon
	Memo string `json:"memo,omitempty"`
}

// Swap calls a router contract or protocol with prepared call data.
type Swap struct {
	TxCommon
	CallData     []byte `json:"callData"`
	ApprovalData []byte `json:"approvalData,omitempty"`
	Limit        uint64 `json:"limit"`
}

func (Transfer) IsSwap() bool { return false }
func (Swap) IsSwap() bool     { return true }

func (Transfer) isBlockchainTransaction() {}
func (Swap) isBlockchainTransaction()     {}

// TxChain is a shorthand for the chain a transaction is sent on.
func TxChain(tx BlockchainTransaction) Chain {
	return tx.Common().Coin.Chain
}

// TxAmount returns the transferred amount, zero when unset.
func TxAmount(tx BlockchainTransaction) *big.Int {
	if a := tx.Common().Amount; a != nil {
		return a
	}
	return new(big.Int)
}

// TxMemo returns the memo of a transfer and an empty string for swaps.
func TxMemo(tx BlockchainTransaction) string {
	switch t := tx.(type) {
	case Transfer:
		return t.Memo
	case *Transfer:
		return t.Memo
	default:
		return ""
	}
}
