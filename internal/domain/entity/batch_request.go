package entity

import "math/big"

// FeeRequestItem represents a single item in a batch fee request.
type FeeRequestItem struct {
	ID          string
	Transaction BlockchainTransaction
}

// FeeResultItem represents the result of a single fee request from a batch.
type FeeResultItem struct {
	RequestID       string
	Chain           Chain
	Ticker          string
	Fee             Fee
	Amount          *big.Int
	FormattedAmount string
	Error           error
}
