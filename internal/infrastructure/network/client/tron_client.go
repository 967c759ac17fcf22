package client

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fbsobreira/gotron-sdk/pkg/address"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	chainParametersCacheKey = "chain_parameters"
	trc20TransferSelector   = "transfer(address,uint256)"
)

// TronClient reads the TronGrid HTTP API.
type TronClient struct {
	http    *jsonHTTPClient
	baseURL string
	cache   *cache.Cache
	logger  *zap.Logger
}

// NewTronClient creates a new TronGrid client caching chain parameters for ttl.
func NewTronClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options, ttl time.Duration) *TronClient {
	named := logger.Named("TronClient")
	headers := map[string]string{}
	if endpoint.APIKey != "" {
		headers["TRON-PRO-API-KEY"] = endpoint.APIKey
	}
	return &TronClient{
		http:    newJSONHTTPClient(named, opts, headers),
		baseURL: endpoint.PrimaryURL,
		cache:   cache.New(ttl, 2*ttl),
		logger:  named,
	}
}

type tronChainParametersResponse struct {
	ChainParameter []struct {
		Key   string `json:"key"`
		Value int64  `json:"value"`
	} `json:"chainParameter"`
}

type tronAccountResourceResponse struct {
	FreeNetLimit int64 `json:"freeNetLimit"`
	FreeNetUsed  int64 `json:"freeNetUsed"`
	NetLimit     int64 `json:"NetLimit"`
	NetUsed      int64 `json:"NetUsed"`
	EnergyLimit  int64 `json:"EnergyLimit"`
	EnergyUsed   int64 `json:"EnergyUsed"`
}

type tronConstantContractResponse struct {
	Result struct {
		Result  bool   `json:"result"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"result"`
	EnergyUsed    int64 `json:"energy_used"`
	EnergyPenalty int64 `json:"energy_penalty"`
}

type tronTransactionInfoResponse struct {
	ID          string `json:"id"`
	BlockNumber int64  `json:"blockNumber"`
	Receipt     struct {
		Result string `json:"result"`
	} `json:"receipt"`
	ResMessage string `json:"resMessage"`
}

func (c *TronClient) post(ctx context.Context, path string, body, out any) error {
	return c.http.postJSON(ctx, joinURL(c.baseURL, path), body, out)
}

// ChainParameters returns the network prices, cached.
func (c *TronClient) ChainParameters(ctx context.Context) (entity.TronChainParameters, error) {
	if cached, found := c.cache.Get(chainParametersCacheKey); found {
		if params, ok := cached.(entity.TronChainParameters); ok {
			return params, nil
		}
	}

	var resp tronChainParametersResponse
	if err := c.post(ctx, "/wallet/getchainparameters", map[string]any{}, &resp); err != nil {
		return entity.TronChainParameters{}, fmt.Errorf("failed to get tron chain parameters: %w", err)
	}

	var params entity.TronChainParameters
	for _, p := range resp.ChainParameter {
		switch p.Key {
		case "getTransactionFee":
			params.BandwidthPrice = p.Value
		case "getEnergyFee":
			params.EnergyPrice = p.Value
		case "getCreateAccountFee":
			params.CreateAccountFee = p.Value
		case "getCreateNewAccountFeeInSystemContract":
			params.CreateNewAccountFeeInContract = p.Value
		case "getMemoFee":
			params.MemoFee = p.Value
		case "getMaxEnergyFactor":
			params.MaxEnergyFactor = p.Value
		}
	}
	if params.BandwidthPrice == 0 || params.EnergyPrice == 0 {
		return entity.TronChainParameters{}, fmt.Errorf("tron chain parameters missing bandwidth or energy price")
	}

	c.cache.Set(chainParametersCacheKey, params, cache.DefaultExpiration)
	c.logger.Debug("Cached tron chain parameters", zap.Int64("energyPrice", params.EnergyPrice), zap.Int64("bandwidthPrice", params.BandwidthPrice))
	return params, nil
}

// AccountResource returns the bandwidth and energy allowance of an account.
func (c *TronClient) AccountResource(ctx context.Context, addr string) (entity.TronAccountResource, error) {
	var resp tronAccountResourceResponse
	if err := c.post(ctx, "/wallet/getaccountresource", map[string]any{"address": addr, "visible": true}, &resp); err != nil {
		return entity.TronAccountResource{}, fmt.Errorf("failed to get tron account resource %s: %w", addr, err)
	}
	return entity.TronAccountResource(resp), nil
}

// AccountExists reports whether the account is activated. TronGrid answers {} for unknown accounts.
func (c *TronClient) AccountExists(ctx context.Context, addr string) (bool, error) {
	var resp map[string]any
	if err := c.post(ctx, "/wallet/getaccount", map[string]any{"address": addr, "visible": true}, &resp); err != nil {
		return false, fmt.Errorf("failed to get tron account %s: %w", addr, err)
	}
	return len(resp) > 0, nil
}

// SimulateTransfer runs a TRC-20 transfer through triggerconstantcontract.
func (c *TronClient) SimulateTransfer(ctx context.Context, owner, contract, to string, amount *big.Int) (entity.TronSimulation, error) {
	param, err := encodeTransferParameter(to, amount)
	if err != nil {
		return entity.TronSimulation{}, err
	}

	req := map[string]any{
		"owner_address":     owner,
		"contract_address":  contract,
		"function_selector": trc20TransferSelector,
		"parameter":         param,
		"visible":           true,
	}
	var resp tronConstantContractResponse
	if err := c.post(ctx, "/wallet/triggerconstantcontract", req, &resp); err != nil {
		return entity.TronSimulation{}, fmt.Errorf("failed to simulate tron transfer on %s: %w", contract, err)
	}
	if !resp.Result.Result {
		return entity.TronSimulation{}, fmt.Errorf("tron transfer simulation rejected: %s %s", resp.Result.Code, decodeTronMessage(resp.Result.Message))
	}
	return entity.TronSimulation{EnergyUsed: resp.EnergyUsed, EnergyPenalty: resp.EnergyPenalty}, nil
}

// encodeTransferParameter ABI-encodes (address,uint256) with the 0x41 prefix stripped from the address.
func encodeTransferParameter(to string, amount *big.Int) (string, error) {
	addr, err := address.Base58ToAddress(to)
	if err != nil {
		return "", fmt.Errorf("invalid tron address %q: %w", to, err)
	}
	raw := addr.Bytes()
	if len(raw) != 21 {
		return "", fmt.Errorf("invalid tron address length %d", len(raw))
	}
	if amount == nil {
		amount = new(big.Int)
	}
	data := append(common.LeftPadBytes(raw[1:], 32), common.LeftPadBytes(amount.Bytes(), 32)...)
	return common.Bytes2Hex(data), nil
}

// ContractEnergyFactor returns the dynamic energy factor of a contract, 0 when not penalized.
func (c *TronClient) ContractEnergyFactor(ctx context.Context, contract string) (int64, error) {
	var resp struct {
		ContractState struct {
			EnergyFactor int64 `json:"energy_factor"`
		} `json:"contract_state"`
	}
	if err := c.post(ctx, "/wallet/getcontractinfo", map[string]any{"value": contract, "visible": true}, &resp); err != nil {
		return 0, fmt.Errorf("failed to get tron contract info %s: %w", contract, err)
	}
	return resp.ContractState.EnergyFactor, nil
}

// TransactionInfo returns nil without error when the node has no info for txID.
func (c *TronClient) TransactionInfo(ctx context.Context, txID string) (*entity.TronTransactionInfo, error) {
	var resp tronTransactionInfoResponse
	if err := c.post(ctx, "/wallet/gettransactioninfobyid", map[string]any{"value": txID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to get tron transaction info %s: %w", txID, err)
	}
	if resp.ID == "" && resp.BlockNumber == 0 {
		return nil, nil
	}
	return &entity.TronTransactionInfo{
		BlockNumber: resp.BlockNumber,
		Result:      resp.Receipt.Result,
		ResMessage:  decodeTronMessage(resp.ResMessage),
	}, nil
}

// decodeTronMessage turns the hex-encoded messages of TronGrid into text.
func decodeTronMessage(msg string) string {
	if msg == "" {
		return ""
	}
	b, err := hex.DecodeString(strings.TrimPrefix(msg, "0x"))
	if err != nil || len(b) == 0 {
		return msg
	}
	return string(b)
}

var _ port.TronClient = (*TronClient)(nil)
