package restapi

import (
	"net/http"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

const maxBatchItems = 500

// FeeHandler serves fee estimation and catalog endpoints.
type FeeHandler struct {
	fees     port.FeeService
	batch    port.FeeBatchService
	coins    port.CoinProvider
	txConfig port.TxStatusConfigurationProvider
	logger   port.Logger
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(
	fees port.FeeService,
	batch port.FeeBatchService,
	coins port.CoinProvider,
	txConfig port.TxStatusConfigurationProvider,
	logger port.Logger,
) *FeeHandler {
	return &FeeHandler{fees: fees, batch: batch, coins: coins, txConfig: txConfig, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func abortWithError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, errorResponse{Error: err.Error()})
}

// EstimateFee prices a single transaction.
func (h *FeeHandler) EstimateFee(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	tx, err := req.toTransaction(h.coins)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	fee, err := h.fees.CalculateFees(c.Request.Context(), tx)
	if err != nil {
		h.logger.Warn("Fee estimation failed", "chain", entity.TxChain(tx), "error", err)
		abortWithError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, newFeeResponse(entity.TxChain(tx), fee))
}

// EstimateBatch prices many transactions. Invalid items are reported next to failed estimations.
func (h *FeeHandler) EstimateBatch(c *gin.Context) {
	var req BatchFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.Items) > maxBatchItems {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "too many items in batch"})
		return
	}

	resp := BatchFeeResponse{Results: []BatchFeeResult{}}
	items := make([]entity.FeeRequestItem, 0, len(req.Items))
	for i, r := range req.Items {
		id := requestID(r, i)
		tx, err := r.toTransaction(h.coins)
		if err != nil {
			resp.Errors = append(resp.Errors, entity.FeeError{
				RequestID:    id,
				Chain:        r.Coin.Chain,
				Ticker:       r.Coin.Ticker,
				ContractAddr: r.Coin.ContractAddress,
				IsNative:     r.Coin.IsNativeToken,
				Message:      err.Error(),
			})
			continue
		}
		items = append(items, entity.FeeRequestItem{ID: id, Transaction: tx})
	}

	for _, res := range h.batch.EstimateBatch(c.Request.Context(), items) {
		if res.Error != nil {
			resp.Errors = append(resp.Errors, entity.FeeError{
				RequestID: res.RequestID,
				Chain:     res.Chain,
				Ticker:    res.Ticker,
				Message:   res.Error.Error(),
			})
			continue
		}
		resp.Results = append(resp.Results, BatchFeeResult{
			RequestID: res.RequestID,
			Ticker:    res.Ticker,
			Fee:       newFeeResponse(res.Chain, res.Fee),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ListChains describes every supported chain.
func (h *FeeHandler) ListChains(c *gin.Context) {
	chains := entity.AllChains()
	resp := make([]ChainResponse, 0, len(chains))
	for _, chain := range chains {
		item := ChainResponse{
			Chain:             chain,
			Standard:          chain.Standard(),
			FeeUnit:           chain.FeeUnit(),
			NativeTicker:      chain.NativeTicker(),
			NativeDecimals:    chain.NativeDecimals(),
			SupportsLegacyGas: chain.SupportsLegacyGas(),
			IsLayer2:          chain.IsLayer2(),
		}
		if cfg, err := h.txConfig.GetConfigurationForChain(chain); err == nil {
			item.TxStatus = true
			item.PollIntervalSeconds = cfg.PollInterval.Seconds()
			item.MaxWaitSeconds = cfg.MaxWait.Seconds()
		}
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

// ListCoins returns the coin catalog, optionally filtered by the chain query parameter.
func (h *FeeHandler) ListCoins(c *gin.Context) {
	coins, err := h.coins.GetCoins()
	if err != nil {
		h.logger.Error("Failed to load coin catalog", "error", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	raw := c.Query("chain")
	if raw == "" {
		c.JSON(http.StatusOK, coins)
		return
	}
	chain, err := entity.ChainFromRaw(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	filtered := make([]entity.Coin, 0)
	for _, coin := range coins {
		if coin.Chain == chain {
			filtered = append(filtered, coin)
		}
	}
	c.JSON(http.StatusOK, filtered)
}
