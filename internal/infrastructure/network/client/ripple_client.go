package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"go.uber.org/zap"
)

// RippledError is an error reported inside a rippled result object.
type RippledError struct {
	Code    string
	Message string
}

func (e *RippledError) Error() string {
	if e.Message == "" {
		return "rippled error " + e.Code
	}
	return fmt.Sprintf("rippled error %s: %s", e.Code, e.Message)
}

// RippleClient reads rippled over its JSON-RPC interface.
type RippleClient struct {
	http *jsonHTTPClient
	urls []string
}

// NewRippleClient creates a new rippled client.
func NewRippleClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *RippleClient {
	return &RippleClient{
		http: newJSONHTTPClient(logger.Named("RippleClient"), opts, nil),
		urls: endpoint.URLs(),
	}
}

type rippledStatus struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

func (s rippledStatus) err() error {
	if s.Status == "error" || s.Error != "" {
		return &RippledError{Code: s.Error, Message: s.ErrorMessage}
	}
	return nil
}

func isRippledError(err error, code string) bool {
	var re *RippledError
	return errors.As(err, &re) && re.Code == code
}

// call performs a rippled method with a single params object.
func (c *RippleClient) call(ctx context.Context, method string, params any, out interface{ err() error }) error {
	if params == nil {
		params = map[string]any{}
	}
	if err := c.http.callRPC(ctx, c.urls, method, []any{params}, out); err != nil {
		return err
	}
	return out.err()
}

type rippledFeeResult struct {
	rippledStatus
	Drops struct {
		BaseFee string `json:"base_fee"`
	} `json:"drops"`
}

type rippledServerStateResult struct {
	rippledStatus
	State struct {
		ValidatedLedger struct {
			ReserveBase int64 `json:"reserve_base"`
		} `json:"validated_ledger"`
	} `json:"state"`
}

type rippledTxResult struct {
	rippledStatus
	Validated bool `json:"validated"`
	Meta      *struct {
		TransactionResult string `json:"TransactionResult"`
	} `json:"meta"`
}

// BaseFee returns the open ledger base fee in drops.
func (c *RippleClient) BaseFee(ctx context.Context) (*big.Int, error) {
	var res rippledFeeResult
	if err := c.call(ctx, "fee", nil, &res); err != nil {
		return nil, fmt.Errorf("failed to get ripple fee: %w", err)
	}
	fee, ok := new(big.Int).SetString(res.Drops.BaseFee, 10)
	if !ok {
		return nil, fmt.Errorf("invalid ripple base fee %q", res.Drops.BaseFee)
	}
	return fee, nil
}

// ReserveBase returns the account reserve of the validated ledger in drops.
func (c *RippleClient) ReserveBase(ctx context.Context) (*big.Int, error) {
	var res rippledServerStateResult
	if err := c.call(ctx, "server_state", nil, &res); err != nil {
		return nil, fmt.Errorf("failed to get ripple server state: %w", err)
	}
	if res.State.ValidatedLedger.ReserveBase <= 0 {
		return nil, errors.New("ripple server state without validated ledger reserve")
	}
	return big.NewInt(res.State.ValidatedLedger.ReserveBase), nil
}

// AccountExists reports whether the account is funded in the current ledger.
func (c *RippleClient) AccountExists(ctx context.Context, address string) (bool, error) {
	var res rippledStatus
	err := c.call(ctx, "account_info", map[string]any{"account": address, "ledger_index": "current"}, &res)
	if isRippledError(err, "actNotFound") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get ripple account %s: %w", address, err)
	}
	return true, nil
}

// Transaction returns nil without error when rippled does not know the hash.
func (c *RippleClient) Transaction(ctx context.Context, txHash string) (*entity.RippleTransaction, error) {
	var res rippledTxResult
	err := c.call(ctx, "tx", map[string]any{"transaction": txHash}, &res)
	if isRippledError(err, "txnNotFound") {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ripple transaction %s: %w", txHash, err)
	}

	out := &entity.RippleTransaction{Validated: res.Validated}
	if res.Meta != nil {
		out.Result = res.Meta.TransactionResult
	}
	return out, nil
}

var _ port.RippleClient = (*RippleClient)(nil)
