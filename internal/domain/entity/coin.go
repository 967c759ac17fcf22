package entity

// Coin holds the details of an asset on a chain.
type Coin struct {
	Chain           Chain  `json:"chain" yaml:"chain"`
	Ticker          string `json:"ticker" yaml:"ticker"`
	Decimals        int32  `json:"decimals" yaml:"decimals"`
	ContractAddress string `json:"contractAddress,omitempty" yaml:"contractAddress,omitempty"` // empty for native assets
	Address         string `json:"address,omitempty" yaml:"address,omitempty"`                 // owner address on the chain
	IsNativeToken   bool   `json:"isNativeToken" yaml:"isNativeToken"`
}

// NativeCoin returns the fee-paying coin of a chain.
func NativeCoin(chain Chain) Coin {
	return Coin{
		Chain:         chain,
		Ticker:        chain.NativeTicker(),
		Decimals:      chain.NativeDecimals(),
		IsNativeToken: true,
	}
}
