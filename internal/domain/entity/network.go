package entity

// ChainEndpoint holds the RPC and indexer locations used to reach a chain.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type ChainEndpoint struct {
	Chain           Chain    `json:"chain" yaml:"chain"`
	ChainID         uint64   `json:"chainId,omitempty" yaml:"chainId,omitempty"` // EVM chain id
	PrimaryURL      string   `json:"primaryUrl" yaml:"primaryUrl"`
	FallbackURLs    []string `json:"fallbackUrls,omitempty" yaml:"fallbackUrls,omitempty"`
	IndexerURL      string   `json:"indexerUrl,omitempty" yaml:"indexerUrl,omitempty"` // status lookups when they live outside the node (subscan, blockchair)
	APIKey          string   `json:"-" yaml:"apiKey,omitempty"`
	IndexerChainKey string   `json:"indexerChainKey,omitempty" yaml:"indexerChainKey,omitempty"` // path segment of the chain on a shared indexer
}

// URLs returns the primary URL followed by the fallbacks.
func (e ChainEndpoint) URLs() []string {
	urls := make([]string, 0, 1+len(e.FallbackURLs))
	if e.PrimaryURL != "" {
		urls = append(urls, e.PrimaryURL)
	}
	return append(urls, e.FallbackURLs...)
}
