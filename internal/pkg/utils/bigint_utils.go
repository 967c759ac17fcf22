package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatBigInt converts an amount in the smallest unit into a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	if decimals <= 0 {
		return amount.String()
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// ParseBigInt parses a base-10 integer string. Empty input yields zero.
func ParseBigInt(s string) (*big.Int, bool) {
	if s == "" {
		return new(big.Int), true
	}
	return new(big.Int).SetString(s, 10)
}

// MaxBigInt returns the larger of a and b.
func MaxBigInt(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// MulDiv returns v * num / den with integer division.
func MulDiv(v *big.Int, num, den int64) *big.Int {
	out := new(big.Int).Mul(v, big.NewInt(num))
	return out.Quo(out, big.NewInt(den))
}
