package entity

// FeeError describes a failed item of a batch fee request.
type FeeError struct {
	RequestID    string `json:"requestId"`
	Chain        Chain  `json:"chain"`
	Ticker       string `json:"ticker,omitempty"`
	ContractAddr string `json:"contractAddress,omitempty" yaml:"contractAddress,omitempty"`
	IsNative     bool   `json:"isNative"`
	Message      string `json:"message"`
}
