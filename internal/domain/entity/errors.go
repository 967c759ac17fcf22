package entity

import "errors"

var (
	// ErrUnknownChain is returned when a raw chain identifier does not match any supported chain.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrUnsupportedChain means the chain has no entry in a lookup table (status tracking, endpoints).
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrUnsupportedStandard means no strategy or provider is registered for a chain standard.
	ErrUnsupportedStandard = errors.New("unsupported chain standard")
	// ErrStandardMismatch is a programming error: a transaction was routed to a strategy of another family.
	ErrStandardMismatch = errors.New("chain does not belong to strategy standard")
	// ErrUnsupportedTransaction is returned by strategies that cannot price a transaction kind.
	ErrUnsupportedTransaction = errors.New("unsupported transaction type")
	// ErrEstimationPayloadRequired is returned when a chain can only be priced by simulating an unsigned transaction.
	ErrEstimationPayloadRequired = errors.New("estimation payload required")
	// ErrInvalidFee is returned for nil or negative fee amounts.
	ErrInvalidFee = errors.New("invalid fee")
)

// ErrNotConfigured is returned by optional data sources that were not set up.
var ErrNotConfigured = errors.New("not configured")
