package client

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"go.uber.org/zap"
)

// CardanoClient reads a Blockfrost-compatible API.
type CardanoClient struct {
	http    *jsonHTTPClient
	baseURL string
}

// NewCardanoClient creates a new Cardano client. The endpoint API key is sent as project_id.
func NewCardanoClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *CardanoClient {
	headers := map[string]string{}
	if endpoint.APIKey != "" {
		headers["project_id"] = endpoint.APIKey
	}
	return &CardanoClient{
		http:    newJSONHTTPClient(logger.Named("CardanoClient"), opts, headers),
		baseURL: endpoint.PrimaryURL,
	}
}

type blockfrostParameters struct {
	MinFeeA uint64 `json:"min_fee_a"`
	MinFeeB uint64 `json:"min_fee_b"`
}

type blockfrostTransaction struct {
	BlockHeight   uint64 `json:"block_height"`
	ValidContract bool   `json:"valid_contract"`
}

// ProtocolParameters returns the linear fee coefficients of the current epoch.
func (c *CardanoClient) ProtocolParameters(ctx context.Context) (entity.CardanoProtocolParams, error) {
	var params blockfrostParameters
	if err := c.http.getJSON(ctx, joinURL(c.baseURL, "/epochs/latest/parameters"), &params); err != nil {
		return entity.CardanoProtocolParams{}, fmt.Errorf("failed to get cardano protocol parameters: %w", err)
	}
	if params.MinFeeA == 0 {
		return entity.CardanoProtocolParams{}, fmt.Errorf("cardano protocol parameters without min_fee_a")
	}
	return entity.CardanoProtocolParams{MinFeeA: params.MinFeeA, MinFeeB: params.MinFeeB}, nil
}

// Transaction returns nil without error when the hash is not indexed.
func (c *CardanoClient) Transaction(ctx context.Context, txHash string) (*entity.CardanoTransaction, error) {
	var tx blockfrostTransaction
	err := c.http.getJSON(ctx, joinURL(c.baseURL, "/txs/", txHash), &tx)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cardano transaction %s: %w", txHash, err)
	}
	return &entity.CardanoTransaction{BlockHeight: tx.BlockHeight, ValidContract: tx.ValidContract}, nil
}

var _ port.CardanoClient = (*CardanoClient)(nil)
