package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const nativeTxFeeCacheKey = "native_tx_fee_rune"

// ThorChainClient reads THORNode network constants.
type ThorChainClient struct {
	http    *jsonHTTPClient
	baseURL string
	cache   *cache.Cache
}

// NewThorChainClient creates a new THORNode client caching the network constants for ttl.
func NewThorChainClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options, ttl time.Duration) *ThorChainClient {
	return &ThorChainClient{
		http:    newJSONHTTPClient(logger.Named("ThorChainClient"), opts, nil),
		baseURL: endpoint.PrimaryURL,
		cache:   cache.New(ttl, 2*ttl),
	}
}

type thorNetwork struct {
	NativeTxFeeRune string `json:"native_tx_fee_rune"`
}

// NativeTxFee returns the protocol fee of a native RUNE transaction in 1e-8 RUNE.
func (c *ThorChainClient) NativeTxFee(ctx context.Context) (*big.Int, error) {
	if cached, found := c.cache.Get(nativeTxFeeCacheKey); found {
		if fee, ok := cached.(*big.Int); ok {
			return new(big.Int).Set(fee), nil
		}
	}

	var network thorNetwork
	if err := c.http.getJSON(ctx, joinURL(c.baseURL, "/thorchain/network"), &network); err != nil {
		return nil, fmt.Errorf("failed to get thorchain network: %w", err)
	}
	fee, ok := new(big.Int).SetString(network.NativeTxFeeRune, 10)
	if !ok || fee.Sign() <= 0 {
		return nil, fmt.Errorf("invalid native_tx_fee_rune %q", network.NativeTxFeeRune)
	}

	c.cache.Set(nativeTxFeeCacheKey, fee, cache.DefaultExpiration)
	return new(big.Int).Set(fee), nil
}

var _ port.ThorChainClient = (*ThorChainClient)(nil)
