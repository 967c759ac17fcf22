package port

import "fee_tracker/internal/domain/entity"

// CoinProvider defines the interface for fetching the coin catalog.
type CoinProvider interface {
	GetCoins() ([]entity.Coin, error)
	// FindCoin looks a coin up by chain and ticker (case-insensitive).
	FindCoin(chain entity.Chain, ticker string) (entity.Coin, bool)
}
