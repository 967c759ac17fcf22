package port

import "fee_tracker/internal/domain/entity"

// WatchlistProvider defines the interface for fetching transactions to track.
type WatchlistProvider interface {
	GetWatchItems() ([]entity.WatchItem, error)
}
