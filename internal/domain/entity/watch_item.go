package entity

// WatchItem is a broadcast transaction whose confirmation should be tracked.
type WatchItem struct {
	Chain  Chain  `json:"chain"`
	TxHash string `json:"txHash"`
}
