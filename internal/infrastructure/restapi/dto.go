package restapi

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	txKindTransfer = "transfer"
	txKindSwap     = "swap"
)

// TransactionRequest is the JSON form of a transaction to price. Byte fields are hex encoded.
type TransactionRequest struct {
	ID                string           `json:"id,omitempty"`
	Kind              string           `json:"kind"`
	Coin              entity.Coin      `json:"coin"`
	Vault             entity.VaultData `json:"vault"`
	Amount            string           `json:"amount"`
	IsMax             bool             `json:"isMax"`
	To                string           `json:"to"`
	Memo              string           `json:"memo,omitempty"`
	EstimationPayload string           `json:"estimationPayload,omitempty"`
	CallData          string           `json:"callData,omitempty"`
	ApprovalData      string           `json:"approvalData,omitempty"`
	Limit             uint64           `json:"limit,omitempty"`
}

// BatchFeeRequest is the body of the batch endpoint.
type BatchFeeRequest struct {
	Items []TransactionRequest `json:"items"`
}

// FeeResponse is the JSON form of a fee. Amounts are decimal strings in the chain's smallest unit.
type FeeResponse struct {
	Kind                 entity.FeeKind `json:"kind"`
	Chain                entity.Chain   `json:"chain"`
	Amount               string         `json:"amount"`
	FormattedAmount      string         `json:"formattedAmount"`
	Price                string         `json:"price,omitempty"`
	Limit                string         `json:"limit,omitempty"`
	NetworkPrice         string         `json:"networkPrice,omitempty"`
	MaxFeePerGas         string         `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string         `json:"maxPriorityFeePerGas,omitempty"`
	L1DataFee            string         `json:"l1DataFee,omitempty"`
	MaxEnergyRequired    string         `json:"maxEnergyRequired,omitempty"`
	EnergyRequired       string         `json:"energyRequired,omitempty"`
	BandwidthRequired    string         `json:"bandwidthRequired,omitempty"`
	NetworkFee           string         `json:"networkFee,omitempty"`
	AccountActivationFee string         `json:"accountActivationFee,omitempty"`
}

// BatchFeeResult is one successful item of a batch response.
type BatchFeeResult struct {
	RequestID string       `json:"requestId"`
	Ticker    string       `json:"ticker"`
	Fee       *FeeResponse `json:"fee"`
}

// BatchFeeResponse lists priced items and failures, each in request order.
type BatchFeeResponse struct {
	Results []BatchFeeResult  `json:"results"`
	Errors  []entity.FeeError `json:"errors,omitempty"`
}

// ChainResponse describes a supported chain.
type ChainResponse struct {
	Chain               entity.Chain         `json:"chain"`
	Standard            entity.TokenStandard `json:"standard"`
	FeeUnit             string               `json:"feeUnit"`
	NativeTicker        string               `json:"nativeTicker"`
	NativeDecimals      int32                `json:"nativeDecimals"`
	SupportsLegacyGas   bool                 `json:"supportsLegacyGas"`
	IsLayer2            bool                 `json:"isLayer2"`
	TxStatus            bool                 `json:"txStatus"`
	PollIntervalSeconds float64              `json:"pollIntervalSeconds,omitempty"`
	MaxWaitSeconds      float64              `json:"maxWaitSeconds,omitempty"`
}

// WatchRequest starts a watch session.
type WatchRequest struct {
	Chain  string `json:"chain" binding:"required"`
	TxHash string `json:"txHash" binding:"required"`
}

// StatusResponse is the JSON form of a status update.
type StatusResponse struct {
	Chain      entity.Chain    `json:"chain"`
	TxHash     string          `json:"txHash"`
	Status     entity.TxStatus `json:"status"`
	Reason     string          `json:"reason,omitempty"`
	Final      bool            `json:"final"`
	ElapsedMs  int64           `json:"elapsedMs"`
	ObservedAt time.Time       `json:"observedAt"`
}

func newStatusResponse(u entity.TxStatusUpdate) StatusResponse {
	return StatusResponse{
		Chain:      u.Chain,
		TxHash:     u.TxHash,
		Status:     u.Result.Status(),
		Reason:     entity.FailureReason(u.Result),
		Final:      u.Final,
		ElapsedMs:  u.Elapsed.Milliseconds(),
		ObservedAt: u.ObservedAt,
	}
}

func decString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func newFeeResponse(chain entity.Chain, fee entity.Fee) *FeeResponse {
	total := fee.Total()
	resp := &FeeResponse{
		Kind:            fee.Kind(),
		Chain:           chain,
		Amount:          total.String(),
		FormattedAmount: utils.FormatBigInt(total, chain.NativeDecimals()),
	}
	switch f := fee.(type) {
	case entity.GasFees:
		resp.Price = decString(f.Price)
		resp.Limit = decString(f.Limit)
	case entity.Eip1559:
		resp.Limit = decString(f.Limit)
		resp.NetworkPrice = decString(f.NetworkPrice)
		resp.MaxFeePerGas = decString(f.MaxFeePerGas)
		resp.MaxPriorityFeePerGas = decString(f.MaxPriorityFeePerGas)
		resp.L1DataFee = decString(f.L1DataFee)
	case entity.TronFees:
		resp.MaxEnergyRequired = decString(f.MaxEnergyRequired)
		resp.EnergyRequired = decString(f.EnergyRequired)
		resp.BandwidthRequired = decString(f.BandwidthRequired)
	case entity.RippleFees:
		resp.NetworkFee = decString(f.NetworkFee)
		resp.AccountActivationFee = decString(f.AccountActivationFee)
	case entity.BasicFee:
	default:
		panic(fmt.Sprintf("unhandled fee variant %T", fee))
	}
	return resp
}

func decodeHexField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	if !strings.HasPrefix(value, "0x") && !strings.HasPrefix(value, "0X") {
		value = "0x" + value
	}
	b, err := hexutil.Decode(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}

// toTransaction validates the request and completes the coin from the catalog.
func (r TransactionRequest) toTransaction(coins port.CoinProvider) (entity.BlockchainTransaction, error) {
	chain, err := entity.ChainFromRaw(string(r.Coin.Chain))
	if err != nil {
		return nil, err
	}
	coin := r.Coin
	coin.Chain = chain
	if coin.Ticker == "" {
		coin.Ticker = chain.NativeTicker()
	}
	if !coin.IsNativeToken && coin.ContractAddress == "" {
		known, ok := coins.FindCoin(chain, coin.Ticker)
		if !ok {
			return nil, fmt.Errorf("unknown coin %s on %s", coin.Ticker, chain)
		}
		known.Address = coin.Address
		coin = known
	}

	amount := new(big.Int)
	if r.Amount != "" {
		var ok bool
		if amount, ok = utils.ParseBigInt(r.Amount); !ok || amount.Sign() < 0 {
			return nil, fmt.Errorf("invalid amount %q", r.Amount)
		}
	}
	payload, err := decodeHexField("estimationPayload", r.EstimationPayload)
	if err != nil {
		return nil, err
	}

	txc := entity.TxCommon{
		Coin:              coin,
		Vault:             r.Vault,
		Amount:            amount,
		IsMax:             r.IsMax,
		To:                r.To,
		EstimationPayload: payload,
	}

	switch r.Kind {
	case "", txKindTransfer:
		return entity.Transfer{TxCommon: txc, Memo: r.Memo}, nil
	case txKindSwap:
		callData, err := decodeHexField("callData", r.CallData)
		if err != nil {
			return nil, err
		}
		approval, err := decodeHexField("approvalData", r.ApprovalData)
		if err != nil {
			return nil, err
		}
		return entity.Swap{TxCommon: txc, CallData: callData, ApprovalData: approval, Limit: r.Limit}, nil
	default:
		return nil, fmt.Errorf("unknown transaction kind %q", r.Kind)
	}
}

func requestID(r TransactionRequest, index int) string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(index)
}
