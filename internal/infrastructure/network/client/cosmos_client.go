package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CosmosClient reads the REST gateway of Cosmos-SDK nodes, THORNode and MayaNode included.
type CosmosClient struct {
	http      *jsonHTTPClient
	endpoints port.ChainEndpointProvider
}

// NewCosmosClient creates a new Cosmos-SDK client.
func NewCosmosClient(endpoints port.ChainEndpointProvider, logger *zap.Logger, opts Options) *CosmosClient {
	return &CosmosClient{
		http:      newJSONHTTPClient(logger.Named("CosmosClient"), opts, nil),
		endpoints: endpoints,
	}
}

type cosmosNodeConfig struct {
	MinimumGasPrice string `json:"minimum_gas_price"`
}

type cosmosTxResponse struct {
	TxResponse struct {
		Height    int64  `json:"height,string"`
		Code      uint32 `json:"code"`
		Codespace string `json:"codespace"`
		RawLog    string `json:"raw_log"`
	} `json:"tx_response"`
}

func (c *CosmosClient) baseURL(chain entity.Chain) (string, error) {
	switch chain.Standard() {
	case entity.StandardCosmos, entity.StandardThorChain:
	default:
		return "", fmt.Errorf("%w: %s is not a Cosmos-SDK chain", entity.ErrUnsupportedChain, chain)
	}
	ep, ok := c.endpoints.GetEndpoint(chain)
	if !ok || ep.PrimaryURL == "" {
		return "", fmt.Errorf("%w: no endpoint for %s", entity.ErrUnsupportedChain, chain)
	}
	return ep.PrimaryURL, nil
}

// MinimumGasPrice returns the node's minimum gas price in the chain's fee denom.
func (c *CosmosClient) MinimumGasPrice(ctx context.Context, chain entity.Chain) (decimal.Decimal, error) {
	base, err := c.baseURL(chain)
	if err != nil {
		return decimal.Zero, err
	}

	var cfg cosmosNodeConfig
	if err := c.http.getJSON(ctx, joinURL(base, "/cosmos/base/node/v1beta1/config"), &cfg); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get %s node config: %w", chain, err)
	}
	price, err := parseDecCoin(cfg.MinimumGasPrice, chain.FeeUnit())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s minimum gas price %q: %w", chain, cfg.MinimumGasPrice, err)
	}
	return price, nil
}

// parseDecCoin extracts the amount of denom from a comma-separated DecCoins string
// such as "0.0025uatom,0.1ibc/ABC".
func parseDecCoin(coins, denom string) (decimal.Decimal, error) {
	for _, coin := range strings.Split(coins, ",") {
		coin = strings.TrimSpace(coin)
		if !strings.HasSuffix(coin, denom) {
			continue
		}
		amount := strings.TrimSuffix(coin, denom)
		if amount == "" {
			continue
		}
		return decimal.NewFromString(amount)
	}
	return decimal.Zero, fmt.Errorf("denom %s not present", denom)
}

// TxResponse returns nil without error when the node has not indexed the hash.
func (c *CosmosClient) TxResponse(ctx context.Context, chain entity.Chain, txHash string) (*entity.CosmosTxResult, error) {
	base, err := c.baseURL(chain)
	if err != nil {
		return nil, err
	}

	var resp cosmosTxResponse
	err = c.http.getJSON(ctx, joinURL(base, "/cosmos/tx/v1beta1/txs/", txHash), &resp)
	if isCosmosNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s transaction %s: %w", chain, txHash, err)
	}
	return &entity.CosmosTxResult{
		Height:    resp.TxResponse.Height,
		Code:      resp.TxResponse.Code,
		Codespace: resp.TxResponse.Codespace,
		RawLog:    resp.TxResponse.RawLog,
	}, nil
}

// isCosmosNotFound matches 404s and the gRPC-gateway "tx not found" errors some nodes return as 400.
func isCosmosNotFound(err error) bool {
	if IsNotFound(err) {
		return true
	}
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode < 500 && strings.Contains(strings.ToLower(se.Body), "not found")
}

var _ port.CosmosClient = (*CosmosClient)(nil)
