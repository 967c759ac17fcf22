package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/url"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"go.uber.org/zap"
)

// TonClient reads the toncenter HTTP API (v2 for fees, v3 for indexed transactions).
type TonClient struct {
	http    *jsonHTTPClient
	baseURL string
}

// NewTonClient creates a new toncenter client.
func NewTonClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *TonClient {
	headers := map[string]string{}
	if endpoint.APIKey != "" {
		headers["X-API-Key"] = endpoint.APIKey
	}
	return &TonClient{
		http:    newJSONHTTPClient(logger.Named("TonClient"), opts, headers),
		baseURL: endpoint.PrimaryURL,
	}
}

type tonEstimateFeeRequest struct {
	Address      string `json:"address"`
	Body         string `json:"body"`
	IgnoreChksig bool   `json:"ignore_chksig"`
}

type tonFees struct {
	InFwdFee   int64 `json:"in_fwd_fee"`
	StorageFee int64 `json:"storage_fee"`
	GasFee     int64 `json:"gas_fee"`
	FwdFee     int64 `json:"fwd_fee"`
}

type tonEstimateFeeResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Result struct {
		SourceFees tonFees `json:"source_fees"`
	} `json:"result"`
}

type tonTransactionsResponse struct {
	Transactions []struct {
		Description struct {
			Aborted   bool `json:"aborted"`
			ComputePh struct {
				Success  *bool `json:"success"`
				ExitCode int   `json:"exit_code"`
			} `json:"compute_ph"`
		} `json:"description"`
	} `json:"transactions"`
}

// EstimateFee returns the source fees of an external message with body sent to address, in nanoton.
func (c *TonClient) EstimateFee(ctx context.Context, address string, body []byte) (*big.Int, error) {
	req := tonEstimateFeeRequest{
		Address:      address,
		Body:         base64.StdEncoding.EncodeToString(body),
		IgnoreChksig: true,
	}
	var resp tonEstimateFeeResponse
	if err := c.http.postJSON(ctx, joinURL(c.baseURL, "/api/v2/estimateFee"), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to estimate ton fee: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("ton fee estimation rejected: %s", resp.Error)
	}

	f := resp.Result.SourceFees
	return big.NewInt(f.InFwdFee + f.StorageFee + f.GasFee + f.FwdFee), nil
}

// TransactionByMessage returns the transaction that processed an inbound message, nil if none yet.
func (c *TonClient) TransactionByMessage(ctx context.Context, msgHash string) (*entity.TonTransaction, error) {
	q := url.Values{}
	q.Set("msg_hash", msgHash)
	q.Set("direction", "in")

	var resp tonTransactionsResponse
	err := c.http.getJSON(ctx, joinURL(c.baseURL, "/api/v3/transactionsByMessage?", q.Encode()), &resp)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ton transaction by message %s: %w", msgHash, err)
	}
	if len(resp.Transactions) == 0 {
		return nil, nil
	}

	d := resp.Transactions[0].Description
	return &entity.TonTransaction{
		Aborted:        d.Aborted,
		ComputeSuccess: d.ComputePh.Success == nil || *d.ComputePh.Success,
		ExitCode:       d.ComputePh.ExitCode,
	}, nil
}

var _ port.TonClient = (*TonClient)(nil)
