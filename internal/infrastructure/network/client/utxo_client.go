package client

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"net/url"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/btcsuite/btcd/btcutil"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// UTXOClient reads blockchair for fee rates and transactions and, when a node URL is
// configured for the chain, asks the node for estimatesmartfee.
type UTXOClient struct {
	http      *jsonHTTPClient
	endpoints port.ChainEndpointProvider
	logger    *zap.Logger
}

// NewUTXOClient creates a new UTXO client.
func NewUTXOClient(endpoints port.ChainEndpointProvider, logger *zap.Logger, opts Options) *UTXOClient {
	named := logger.Named("UTXOClient")
	return &UTXOClient{
		http:      newJSONHTTPClient(named, opts, nil),
		endpoints: endpoints,
		logger:    named,
	}
}

type blockchairStats struct {
	Data struct {
		SuggestedFeePerByteSat int64 `json:"suggested_transaction_fee_per_byte_sat"`
	} `json:"data"`
}

type blockchairTransaction struct {
	Transaction struct {
		BlockID int64 `json:"block_id"`
		Fee     int64 `json:"fee"`
	} `json:"transaction"`
}

type smartFeeResult struct {
	FeeRate float64  `json:"feerate"`
	Blocks  int      `json:"blocks"`
	Errors  []string `json:"errors"`
}

func (c *UTXOClient) endpoint(chain entity.Chain) (entity.ChainEndpoint, error) {
	if chain.Standard() != entity.StandardUTXO {
		return entity.ChainEndpoint{}, fmt.Errorf("%w: %s is not a UTXO chain", entity.ErrUnsupportedChain, chain)
	}
	ep, ok := c.endpoints.GetEndpoint(chain)
	if !ok {
		return entity.ChainEndpoint{}, fmt.Errorf("%w: no endpoint for %s", entity.ErrUnsupportedChain, chain)
	}
	return ep, nil
}

func indexerURL(ep entity.ChainEndpoint, path string) string {
	u := joinURL(ep.IndexerURL, "/", ep.IndexerChainKey, path)
	if ep.APIKey != "" {
		u += "?key=" + url.QueryEscape(ep.APIKey)
	}
	return u
}

// SuggestedFeeRate returns blockchair's suggested fee in satoshi per byte.
func (c *UTXOClient) SuggestedFeeRate(ctx context.Context, chain entity.Chain) (*big.Int, error) {
	ep, err := c.endpoint(chain)
	if err != nil {
		return nil, err
	}

	var stats blockchairStats
	if err := c.http.getJSON(ctx, indexerURL(ep, "/stats"), &stats); err != nil {
		return nil, fmt.Errorf("failed to get %s stats: %w", chain, err)
	}
	if stats.Data.SuggestedFeePerByteSat <= 0 {
		return nil, fmt.Errorf("%s stats returned no suggested fee", chain)
	}
	return big.NewInt(stats.Data.SuggestedFeePerByteSat), nil
}

// SmartFeeRate asks the chain's node for estimatesmartfee and converts BTC/kvB to sat/vB.
func (c *UTXOClient) SmartFeeRate(ctx context.Context, chain entity.Chain, confTarget int) (*big.Int, error) {
	ep, err := c.endpoint(chain)
	if err != nil {
		return nil, err
	}
	if ep.PrimaryURL == "" {
		return nil, fmt.Errorf("%w: no node for %s", entity.ErrNotConfigured, chain)
	}

	var res smartFeeResult
	if err := c.http.callRPC(ctx, ep.URLs(), "estimatesmartfee", []any{confTarget}, &res); err != nil {
		return nil, fmt.Errorf("failed to estimate smart fee on %s: %w", chain, err)
	}
	if res.FeeRate <= 0 {
		return nil, fmt.Errorf("estimatesmartfee on %s returned no rate: %s", chain, strings.Join(res.Errors, "; "))
	}

	perKvB, err := btcutil.NewAmount(res.FeeRate)
	if err != nil {
		return nil, fmt.Errorf("invalid fee rate %v from %s node: %w", res.FeeRate, chain, err)
	}
	satPerVByte := int64(math.Ceil(float64(perKvB) / 1000))
	if satPerVByte < 1 {
		satPerVByte = 1
	}
	return big.NewInt(satPerVByte), nil
}

// Transaction returns the indexed transaction or nil when blockchair does not know it.
func (c *UTXOClient) Transaction(ctx context.Context, chain entity.Chain, txHash string) (*entity.UTXOTransaction, error) {
	ep, err := c.endpoint(chain)
	if err != nil {
		return nil, err
	}

	// blockchair keys dashboards by the lower-case hash
	key := strings.ToLower(txHash)
	var resp struct {
		Data jsoniter.RawMessage `json:"data"`
	}
	err = c.http.getJSON(ctx, indexerURL(ep, "/dashboards/transaction/"+key), &resp)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s transaction %s: %w", chain, txHash, err)
	}

	// Unknown hashes come back as an empty list instead of an object.
	if len(resp.Data) == 0 || resp.Data[0] != '{' {
		return nil, nil
	}
	var byHash map[string]blockchairTransaction
	if err := json.Unmarshal(resp.Data, &byHash); err != nil {
		return nil, fmt.Errorf("failed to decode %s transaction %s: %w", chain, txHash, err)
	}
	tx, ok := byHash[key]
	if !ok {
		return nil, nil
	}
	return &entity.UTXOTransaction{BlockID: tx.Transaction.BlockID, Fee: tx.Transaction.Fee}, nil
}

var _ port.UTXOClient = (*UTXOClient)(nil)
