package fee

import "math/big"

const plainTransferGas = 21000

// InflateGasLimit applies the safety margin to a node gas estimate: a plain
// transfer (exactly 21000) is kept, anything else gets +40% rounded down.
func InflateGasLimit(estimate uint64) *big.Int {
	if estimate == plainTransferGas {
		return new(big.Int).SetUint64(plainTransferGas)
	}
	limit := new(big.Int).SetUint64(estimate)
	limit.Mul(limit, big.NewInt(140))
	return limit.Quo(limit, big.NewInt(100))
}
