package entity

import "fmt"

// TokenStandard groups chains that share a fee model and a confirmation signal.
type TokenStandard string

const (
	StandardEVM       TokenStandard = "EVM"
	StandardUTXO      TokenStandard = "UTXO"
	StandardCardano   TokenStandard = "CARDANO"
	StandardCosmos    TokenStandard = "COSMOS"
	StandardThorChain TokenStandard = "THORCHAIN"
	StandardSolana    TokenStandard = "SOL"
	StandardSubstrate TokenStandard = "SUBSTRATE"
	StandardSui       TokenStandard = "SUI"
	StandardTon       TokenStandard = "TON"
	StandardRipple    TokenStandard = "RIPPLE"
	StandardTron      TokenStandard = "TRC20"
)

// Chain identifies a supported blockchain by its raw identifier.
type Chain string

const (
	ThorChain Chain = "THORChain"
	MayaChain Chain = "MayaChain"

	Arbitrum    Chain = "Arbitrum"
	Avalanche   Chain = "Avalanche"
	Base        Chain = "Base"
	CronosChain Chain = "CronosChain"
	BscChain    Chain = "BSC"
	Blast       Chain = "Blast"
	Ethereum    Chain = "Ethereum"
	Optimism    Chain = "Optimism"
	Polygon     Chain = "Polygon"
	ZkSync      Chain = "Zksync"
	Mantle      Chain = "Mantle"

	Bitcoin     Chain = "Bitcoin"
	BitcoinCash Chain = "Bitcoin-Cash"
	Litecoin    Chain = "Litecoin"
	Dogecoin    Chain = "Dogecoin"
	Dash        Chain = "Dash"
	Zcash       Chain = "Zcash"
	Cardano     Chain = "Cardano"

	GaiaChain    Chain = "Cosmos"
	Kujira       Chain = "Kujira"
	Dydx         Chain = "Dydx"
	Osmosis      Chain = "Osmosis"
	Terra        Chain = "Terra"
	TerraClassic Chain = "TerraClassic"
	Noble        Chain = "Noble"
	Akash        Chain = "Akash"

	Solana   Chain = "Solana"
	Polkadot Chain = "Polkadot"
	Sui      Chain = "Sui"
	Ton      Chain = "Ton"
	Ripple   Chain = "Ripple"
	Tron     Chain = "Tron"
)

type chainTraits struct {
	standard          TokenStandard
	feeUnit           string
	nativeTicker      string
	nativeDecimals    int32
	supportsLegacyGas bool
	isLayer2          bool
}

// chainOrder keeps AllChains deterministic.
var chainOrder = []Chain{
	ThorChain, MayaChain,
	Arbitrum, Avalanche, Base, CronosChain, BscChain, Blast, Ethereum, Optimism, Polygon, ZkSync, Mantle,
	Bitcoin, BitcoinCash, Litecoin, Dogecoin, Dash, Zcash, Cardano,
	GaiaChain, Kujira, Dydx, Osmosis, Terra, TerraClassic, Noble, Akash,
	Solana, Polkadot, Sui, Ton, Ripple, Tron,
}

var chains = map[Chain]chainTraits{ //nolint:gochecknoglobals // compile-time chain table
	ThorChain: {standard: StandardThorChain, feeUnit: "Rune", nativeTicker: "RUNE", nativeDecimals: 8},
	MayaChain: {standard: StandardThorChain, feeUnit: "cacao", nativeTicker: "CACAO", nativeDecimals: 10},

	Arbitrum:    {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18, isLayer2: true},
	Avalanche:   {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "AVAX", nativeDecimals: 18},
	Base:        {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18, isLayer2: true},
	CronosChain: {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "CRO", nativeDecimals: 18},
	BscChain:    {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "BNB", nativeDecimals: 18, supportsLegacyGas: true},
	Blast:       {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18, isLayer2: true},
	Ethereum:    {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18},
	Optimism:    {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18, isLayer2: true},
	Polygon:     {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "POL", nativeDecimals: 18},
	ZkSync:      {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "ETH", nativeDecimals: 18, isLayer2: true},
	Mantle:      {standard: StandardEVM, feeUnit: "Gwei", nativeTicker: "MNT", nativeDecimals: 18},

	Bitcoin:     {standard: StandardUTXO, feeUnit: "BTC/vbyte", nativeTicker: "BTC", nativeDecimals: 8},
	BitcoinCash: {standard: StandardUTXO, feeUnit: "BCH/vbyte", nativeTicker: "BCH", nativeDecimals: 8},
	Litecoin:    {standard: StandardUTXO, feeUnit: "LTC/vbyte", nativeTicker: "LTC", nativeDecimals: 8},
	Dogecoin:    {standard: StandardUTXO, feeUnit: "Doge/vbyte", nativeTicker: "DOGE", nativeDecimals: 8},
	Dash:        {standard: StandardUTXO, feeUnit: "DASH/vbyte", nativeTicker: "DASH", nativeDecimals: 8},
	Zcash:       {standard: StandardUTXO, feeUnit: "ZEC/vbyte", nativeTicker: "ZEC", nativeDecimals: 8},
	Cardano:     {standard: StandardCardano, feeUnit: "lovelace", nativeTicker: "ADA", nativeDecimals: 6},

	GaiaChain:    {standard: StandardCosmos, feeUnit: "uatom", nativeTicker: "ATOM", nativeDecimals: 6},
	Kujira:       {standard: StandardCosmos, feeUnit: "ukuji", nativeTicker: "KUJI", nativeDecimals: 6},
	Dydx:         {standard: StandardCosmos, feeUnit: "adydx", nativeTicker: "DYDX", nativeDecimals: 18},
	Osmosis:      {standard: StandardCosmos, feeUnit: "uosmo", nativeTicker: "OSMO", nativeDecimals: 6},
	Terra:        {standard: StandardCosmos, feeUnit: "uluna", nativeTicker: "LUNA", nativeDecimals: 6},
	TerraClassic: {standard: StandardCosmos, feeUnit: "uluna", nativeTicker: "LUNC", nativeDecimals: 6},
	Noble:        {standard: StandardCosmos, feeUnit: "uusdc", nativeTicker: "USDC", nativeDecimals: 6},
	Akash:        {standard: StandardCosmos, feeUnit: "uakt", nativeTicker: "AKT", nativeDecimals: 6},

	Solana:   {standard: StandardSolana, feeUnit: "SOL", nativeTicker: "SOL", nativeDecimals: 9},
	Polkadot: {standard: StandardSubstrate, feeUnit: "DOT", nativeTicker: "DOT", nativeDecimals: 10},
	Sui:      {standard: StandardSui, feeUnit: "SUI", nativeTicker: "SUI", nativeDecimals: 9},
	Ton:      {standard: StandardTon, feeUnit: "TON", nativeTicker: "TON", nativeDecimals: 9},
	Ripple:   {standard: StandardRipple, feeUnit: "XRP", nativeTicker: "XRP", nativeDecimals: 6},
	Tron:     {standard: StandardTron, feeUnit: "TRX", nativeTicker: "TRX", nativeDecimals: 6},
}

// ChainFromRaw parses a raw chain identifier such as "BSC" or "Bitcoin-Cash".
func ChainFromRaw(raw string) (Chain, error) {
	c := Chain(raw)
	if _, ok := chains[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChain, raw)
	}
	return c, nil
}

// AllChains returns every supported chain in a stable order.
func AllChains() []Chain {
	out := make([]Chain, len(chainOrder))
	copy(out, chainOrder)
	return out
}

// IsValid reports whether c is a known chain.
func (c Chain) IsValid() bool {
	_, ok := chains[c]
	return ok
}

func (c Chain) String() string { return string(c) }

// Standard returns the protocol family of the chain. Unknown chains have an empty standard.
func (c Chain) Standard() TokenStandard { return chains[c].standard }

// FeeUnit is the display unit used for fee rates on this chain.
func (c Chain) FeeUnit() string { return chains[c].feeUnit }

// NativeTicker returns the ticker of the chain's fee-paying asset.
func (c Chain) NativeTicker() string { return chains[c].nativeTicker }

// NativeDecimals returns the decimal precision of the chain's fee-paying asset.
func (c Chain) NativeDecimals() int32 { return chains[c].nativeDecimals }

// SupportsLegacyGas reports whether the chain prices gas with a single gas price instead of EIP-1559.
func (c Chain) SupportsLegacyGas() bool { return chains[c].supportsLegacyGas }

// IsLayer2 reports whether the chain settles on an L1 and may charge a data-posting fee.
func (c Chain) IsLayer2() bool { return chains[c].isLayer2 }
