package entity

import "time"

// TxStatusConfiguration is the polling cadence of a chain. MaxWait is a hint
// for consumers deciding when to stop waiting; the poller does not enforce it.
type TxStatusConfiguration struct {
	PollInterval time.Duration
	MaxWait      time.Duration
}

// NewTxStatusConfiguration builds a configuration from second counts.
func NewTxStatusConfiguration(pollIntervalSeconds, maxWaitSeconds int) TxStatusConfiguration {
	return TxStatusConfiguration{
		PollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		MaxWait:      time.Duration(maxWaitSeconds) * time.Second,
	}
}

// TxStatus is the name of a TransactionResult variant.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
	TxStatusNotFound  TxStatus = "not_found"
)

// TransactionResult is a confirmation verdict for a broadcast transaction.
type TransactionResult interface {
	Status() TxStatus
	IsTerminal() bool
	isTransactionResult()
}

// Pending means the transaction is known but not yet included.
type Pending struct{}

// Confirmed means the transaction was included and succeeded.
type Confirmed struct{}

// Failed means the transaction was included but reverted or errored.
type Failed struct {
	Reason string
}

// NotFound means the queried node does not know the hash.
type NotFound struct{}

func (Pending) Status() TxStatus   { return TxStatusPending }
func (Confirmed) Status() TxStatus { return TxStatusConfirmed }
func (Failed) Status() TxStatus    { return TxStatusFailed }
func (NotFound) Status() TxStatus  { return TxStatusNotFound }

func (Pending) IsTerminal() bool   { return false }
func (Confirmed) IsTerminal() bool { return true }
func (Failed) IsTerminal() bool    { return true }
func (NotFound) IsTerminal() bool  { return false }

func (Pending) isTransactionResult()   {}
func (Confirmed) isTransactionResult() {}
func (Failed) isTransactionResult()    {}
func (NotFound) isTransactionResult()  {}

// FailureReason returns the reason of a Failed result and an empty string otherwise.
func FailureReason(r TransactionResult) string {
	if f, ok := r.(Failed); ok {
		return f.Reason
	}
	return ""
}

// TxStatusUpdate is a verdict observed by a watch session.
type TxStatusUpdate struct {
	Chain      Chain             `json:"chain"`
	TxHash     string            `json:"txHash"`
	Result     TransactionResult `json:"-"`
	Elapsed    time.Duration     `json:"-"`
	Final      bool              `json:"final"`
	ObservedAt time.Time         `json:"observedAt"`
}
