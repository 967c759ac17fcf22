package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"go.uber.org/zap"
)

// SuiClient reads a Sui fullnode over JSON-RPC.
type SuiClient struct {
	http *jsonHTTPClient
	urls []string
}

// NewSuiClient creates a new Sui client.
func NewSuiClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *SuiClient {
	return &SuiClient{
		http: newJSONHTTPClient(logger.Named("SuiClient"), opts, nil),
		urls: endpoint.URLs(),
	}
}

type suiGasUsed struct {
	ComputationCost string `json:"computationCost"`
	StorageCost     string `json:"storageCost"`
	StorageRebate   string `json:"storageRebate"`
}

type suiStatus struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type suiEffects struct {
	Status  suiStatus  `json:"status"`
	GasUsed suiGasUsed `json:"gasUsed"`
}

// ReferenceGasPrice returns suix_getReferenceGasPrice in MIST.
func (c *SuiClient) ReferenceGasPrice(ctx context.Context) (*big.Int, error) {
	var price string
	if err := c.http.callRPC(ctx, c.urls, "suix_getReferenceGasPrice", nil, &price); err != nil {
		return nil, fmt.Errorf("failed to get sui reference gas price: %w", err)
	}
	v, ok := new(big.Int).SetString(price, 10)
	if !ok {
		return nil, fmt.Errorf("invalid sui reference gas price %q", price)
	}
	return v, nil
}

// DryRunGas dry-runs an unsigned transaction block and returns its gas summary.
// A dry run whose execution fails is an error.
func (c *SuiClient) DryRunGas(ctx context.Context, txBytes []byte) (*entity.SuiGasCost, error) {
	var res struct {
		Effects suiEffects `json:"effects"`
	}
	params := []any{base64.StdEncoding.EncodeToString(txBytes)}
	if err := c.http.callRPC(ctx, c.urls, "sui_dryRunTransactionBlock", params, &res); err != nil {
		return nil, fmt.Errorf("failed to dry run sui transaction: %w", err)
	}
	if res.Effects.Status.Status != "success" {
		return nil, fmt.Errorf("sui dry run failed: %s", res.Effects.Status.Error)
	}

	cost := &entity.SuiGasCost{}
	var ok bool
	if cost.ComputationCost, ok = new(big.Int).SetString(res.Effects.GasUsed.ComputationCost, 10); !ok {
		return nil, fmt.Errorf("invalid sui computation cost %q", res.Effects.GasUsed.ComputationCost)
	}
	if cost.StorageCost, ok = new(big.Int).SetString(res.Effects.GasUsed.StorageCost, 10); !ok {
		return nil, fmt.Errorf("invalid sui storage cost %q", res.Effects.GasUsed.StorageCost)
	}
	if cost.StorageRebate, ok = new(big.Int).SetString(res.Effects.GasUsed.StorageRebate, 10); !ok {
		cost.StorageRebate = new(big.Int)
	}
	return cost, nil
}

// TransactionEffects returns nil without error when the digest is unknown.
func (c *SuiClient) TransactionEffects(ctx context.Context, digest string) (*entity.SuiTransactionEffects, error) {
	var res struct {
		Effects *suiEffects `json:"effects"`
	}
	params := []any{digest, map[string]bool{"showEffects": true}}
	err := c.http.callRPC(ctx, c.urls, "sui_getTransactionBlock", params, &res)
	if isSuiNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sui transaction %s: %w", digest, err)
	}
	if res.Effects == nil {
		return nil, nil
	}
	return &entity.SuiTransactionEffects{Status: res.Effects.Status.Status, Error: res.Effects.Status.Error}, nil
}

func isSuiNotFound(err error) bool {
	rpcErr, ok := err.(*RPCError) //nolint:errorlint // callRPC returns RPC errors unwrapped
	if !ok {
		return false
	}
	msg := strings.ToLower(rpcErr.Message)
	return strings.Contains(msg, "could not find") || strings.Contains(msg, "not found")
}

var _ port.SuiClient = (*SuiClient)(nil)
