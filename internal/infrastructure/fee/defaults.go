package fee

import (
	"fmt"
	"math/big"

	"fee_tracker/internal/domain/entity"
)

const (
	gwei = 1_000_000_000

	defaultSwapGasLimit          = 600000
	defaultCoinTransferGasLimit  = 23000
	defaultTokenTransferGasLimit = 120000
	defaultArbitrumTransferLimit = 160000

	defaultUTXOVBytes = 250
)

// DefaultFeeTable holds the RPC-free fees used when live estimation fails.
// Build it with NewDefaultFeeTable; it is read-only once handed to the strategies.
type DefaultFeeTable struct {
	gasPrices map[entity.Chain]*big.Int
	amounts   map[entity.Chain]*big.Int
}

// NewDefaultFeeTable returns the built-in defaults.
func NewDefaultFeeTable() *DefaultFeeTable {
	return &DefaultFeeTable{
		gasPrices: map[entity.Chain]*big.Int{
			entity.Ethereum:    big.NewInt(30 * gwei),
			entity.BscChain:    big.NewInt(3 * gwei),
			entity.Polygon:     big.NewInt(50 * gwei),
			entity.Avalanche:   big.NewInt(25 * gwei),
			entity.CronosChain: big.NewInt(400 * gwei),
			entity.Mantle:      big.NewInt(gwei / 50),
			entity.Arbitrum:    big.NewInt(gwei / 10),
			entity.Base:        big.NewInt(gwei / 20),
			entity.Blast:       big.NewInt(gwei / 20),
			entity.Optimism:    big.NewInt(gwei / 20),
			entity.ZkSync:      big.NewInt(gwei / 4),
		},
		amounts: map[entity.Chain]*big.Int{
			entity.Bitcoin:     big.NewInt(5000),
			entity.BitcoinCash: big.NewInt(750),
			entity.Litecoin:    big.NewInt(2500),
			entity.Dogecoin:    big.NewInt(250000),
			entity.Dash:        big.NewInt(1250),
			entity.Zcash:       big.NewInt(zcashConventionalFee),
			entity.Cardano:     big.NewInt(180000),

			entity.GaiaChain:    big.NewInt(7500),
			entity.Kujira:       big.NewInt(7500),
			entity.Osmosis:      big.NewInt(7500),
			entity.Terra:        big.NewInt(7500),
			entity.Akash:        big.NewInt(7500),
			entity.Noble:        big.NewInt(20000),
			entity.TerraClassic: big.NewInt(10000000),
			entity.Dydx:         big.NewInt(2500000000000000),
			entity.ThorChain:    big.NewInt(2000000),
			entity.MayaChain:    big.NewInt(mayaChainFee),

			entity.Solana:   big.NewInt(solanaMinPriorityFee),
			entity.Polkadot: big.NewInt(250000000),
			entity.Sui:      big.NewInt(3000000),
			entity.Ton:      big.NewInt(10000000),
			entity.Ripple:   big.NewInt(180000),
			entity.Tron:     big.NewInt(tronSwapDefaultFee),
		},
	}
}

// WithOverrides returns a copy of the table with amounts and EVM gas prices replaced.
// Values are base-10 integers in the chain's smallest unit.
func (t *DefaultFeeTable) WithOverrides(amounts, gasPrices map[entity.Chain]string) (*DefaultFeeTable, error) {
	out := &DefaultFeeTable{
		gasPrices: make(map[entity.Chain]*big.Int, len(t.gasPrices)),
		amounts:   make(map[entity.Chain]*big.Int, len(t.amounts)),
	}
	for k, v := range t.gasPrices {
		out.gasPrices[k] = v
	}
	for k, v := range t.amounts {
		out.amounts[k] = v
	}

	for chain, raw := range amounts {
		v, ok := new(big.Int).SetString(raw, 10)
		if !ok || v.Sign() < 0 {
			return nil, fmt.Errorf("invalid default fee %q for %s", raw, chain)
		}
		out.amounts[chain] = v
	}
	for chain, raw := range gasPrices {
		if chain.Standard() != entity.StandardEVM {
			return nil, fmt.Errorf("default gas price for non-EVM chain %s", chain)
		}
		v, ok := new(big.Int).SetString(raw, 10)
		if !ok || v.Sign() <= 0 {
			return nil, fmt.Errorf("invalid default gas price %q for %s", raw, chain)
		}
		out.gasPrices[chain] = v
	}
	return out, nil
}

// GasPrice returns the default gas price of an EVM chain in wei.
func (t *DefaultFeeTable) GasPrice(chain entity.Chain) (*big.Int, bool) {
	v, ok := t.gasPrices[chain]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Amount returns the default total fee of a single-scalar chain.
func (t *DefaultFeeTable) Amount(chain entity.Chain) (*big.Int, bool) {
	v, ok := t.amounts[chain]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

func (t *DefaultFeeTable) basicFee(chain entity.Chain) (entity.Fee, error) {
	amount, ok := t.Amount(chain)
	if !ok {
		return nil, fmt.Errorf("no default fee for %s", chain)
	}
	return entity.BasicFee{Amount: amount}, nil
}
