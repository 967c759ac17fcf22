package client

import (
	"context"
	"fmt"
	"math/big"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
)

const subscanRecordNotFound = 10004

// PolkadotClient reads a Substrate node for fee info and Subscan for extrinsic outcomes.
type PolkadotClient struct {
	node       *jsonHTTPClient
	indexer    *jsonHTTPClient
	urls       []string
	indexerURL string
}

// NewPolkadotClient creates a new Polkadot client. The endpoint API key is sent to Subscan.
func NewPolkadotClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *PolkadotClient {
	named := logger.Named("PolkadotClient")
	headers := map[string]string{}
	if endpoint.APIKey != "" {
		headers["X-API-Key"] = endpoint.APIKey
	}
	return &PolkadotClient{
		node:       newJSONHTTPClient(named, opts, nil),
		indexer:    newJSONHTTPClient(named, opts, headers),
		urls:       endpoint.URLs(),
		indexerURL: endpoint.IndexerURL,
	}
}

type subscanExtrinsicResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Success   bool `json:"success"`
		Finalized bool `json:"finalized"`
		Error     *struct {
			Module string `json:"module"`
			Name   string `json:"name"`
		} `json:"error"`
	} `json:"data"`
}

// PartialFee returns payment_queryInfo partialFee of a signed-shape extrinsic, in planck.
func (c *PolkadotClient) PartialFee(ctx context.Context, extrinsic []byte) (*big.Int, error) {
	var info struct {
		PartialFee string `json:"partialFee"`
	}
	if err := c.node.callRPC(ctx, c.urls, "payment_queryInfo", []any{hexutil.Encode(extrinsic)}, &info); err != nil {
		return nil, fmt.Errorf("failed to query polkadot payment info: %w", err)
	}
	fee, ok := new(big.Int).SetString(info.PartialFee, 10)
	if !ok {
		return nil, fmt.Errorf("invalid polkadot partialFee %q", info.PartialFee)
	}
	return fee, nil
}

// Extrinsic returns the indexed extrinsic or nil when Subscan has no record of it.
func (c *PolkadotClient) Extrinsic(ctx context.Context, txHash string) (*entity.PolkadotExtrinsic, error) {
	if c.indexerURL == "" {
		return nil, fmt.Errorf("%w: no polkadot indexer", entity.ErrNotConfigured)
	}

	var resp subscanExtrinsicResponse
	err := c.indexer.postJSON(ctx, joinURL(c.indexerURL, "/api/scan/extrinsic"), map[string]string{"hash": txHash}, &resp)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get polkadot extrinsic %s: %w", txHash, err)
	}
	if resp.Code == subscanRecordNotFound || (resp.Code == 0 && resp.Data == nil) {
		return nil, nil
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("subscan error %d: %s", resp.Code, resp.Message)
	}

	out := &entity.PolkadotExtrinsic{Success: resp.Data.Success, Finalized: resp.Data.Finalized}
	if resp.Data.Error != nil {
		out.ErrorModule = resp.Data.Error.Module
		out.ErrorName = resp.Data.Error.Name
	}
	return out, nil
}

var _ port.PolkadotClient = (*PolkadotClient)(nil)
