package entity

import (
	"fmt"
	"math/big"
)

// FeeKind tags the concrete Fee variant.
type FeeKind string

const (
	FeeKindGas     FeeKind = "gas"
	FeeKindEip1559 FeeKind = "eip1559"
	FeeKindTron    FeeKind = "tron"
	FeeKindRipple  FeeKind = "ripple"
	FeeKindBasic   FeeKind = "basic"
)

// Fee is the network cost of a transaction. Total is what the user's balance
// is debited for fees, in the chain's smallest unit.
type Fee interface {
	Total() *big.Int
	Kind() FeeKind
	isFee()
}

// GasFees is used by legacy gas-price EVM chains.
type GasFees struct {
	Price  *big.Int
	Limit  *big.Int
	Amount *big.Int
}

// Eip1559 is used by EVM chains with a base fee market.
// L1DataFee is non-zero only on layer-2 chains and is already included in Amount.
type Eip1559 struct {
	Limit                *big.Int
	NetworkPrice         *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	L1DataFee            *big.Int
	Amount               *big.Int
}

// TronFees carries the resource accounting of a Tron transaction.
type TronFees struct {
	MaxEnergyRequired *big.Int
	EnergyRequired    *big.Int
	BandwidthRequired *big.Int
	Amount            *big.Int
}

// RippleFees splits the ledger fee from the reserve needed to activate a new account.
type RippleFees struct {
	NetworkFee           *big.Int
	AccountActivationFee *big.Int
	Amount               *big.Int
}

// BasicFee is a single scalar fee.
type BasicFee struct {
	Amount *big.Int
}

func (f GasFees) Total() *big.Int    { return orZero(f.Amount) }
func (f Eip1559) Total() *big.Int    { return orZero(f.Amount) }
func (f TronFees) Total() *big.Int   { return orZero(f.Amount) }
func (f RippleFees) Total() *big.Int { return orZero(f.Amount) }
func (f BasicFee) Total() *big.Int   { return orZero(f.Amount) }

func (GasFees) Kind() FeeKind    { return FeeKindGas }
func (Eip1559) Kind() FeeKind    { return FeeKindEip1559 }
func (TronFees) Kind() FeeKind   { return FeeKindTron }
func (RippleFees) Kind() FeeKind { return FeeKindRipple }
func (BasicFee) Kind() FeeKind   { return FeeKindBasic }

func (GasFees) isFee()    {}
func (Eip1559) isFee()    {}
func (TronFees) isFee()   {}
func (RippleFees) isFee() {}
func (BasicFee) isFee()   {}

// NetworkAmount returns the fee without the L1 data addend.
func (f Eip1559) NetworkAmount() *big.Int {
	if f.L1DataFee == nil {
		return orZero(f.Amount)
	}
	return new(big.Int).Sub(orZero(f.Amount), f.L1DataFee)
}

// ValidateFee rejects missing fees and negative amounts.
func ValidateFee(fee Fee) error {
	if fee == nil {
		return fmt.Errorf("%w: nil fee", ErrInvalidFee)
	}
	var amount *big.Int
	switch f := fee.(type) {
	case GasFees:
		amount = f.Amount
	case Eip1559:
		amount = f.Amount
	case TronFees:
		amount = f.Amount
	case RippleFees:
		amount = f.Amount
	case BasicFee:
		amount = f.Amount
	default:
		panic(fmt.Sprintf("unhandled fee variant %T", fee))
	}
	if amount == nil {
		return fmt.Errorf("%w: %s fee without amount", ErrInvalidFee, fee.Kind())
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: negative %s amount %s", ErrInvalidFee, fee.Kind(), amount)
	}
	return nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
