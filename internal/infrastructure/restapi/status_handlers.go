package restapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// StatusHandler serves transaction status endpoints.
type StatusHandler struct {
	watcher port.TxStatusWatcher
	config  port.TxStatusConfigurationProvider
	logger  port.Logger
	// baseCtx outlives requests; background sessions end when it is cancelled.
	baseCtx context.Context
}

// NewStatusHandler creates a handler whose background watch sessions are bound to ctx.
func NewStatusHandler(
	ctx context.Context,
	watcher port.TxStatusWatcher,
	config port.TxStatusConfigurationProvider,
	logger port.Logger,
) *StatusHandler {
	return &StatusHandler{watcher: watcher, config: config, logger: logger, baseCtx: ctx}
}

func (h *StatusHandler) parseChain(c *gin.Context, raw string) (entity.Chain, bool) {
	chain, err := entity.ChainFromRaw(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return "", false
	}
	if !h.config.SupportsTxStatus(chain) {
		abortWithError(c, http.StatusUnprocessableEntity, entity.ErrUnsupportedChain)
		return "", false
	}
	return chain, true
}

func (h *StatusHandler) startError(c *gin.Context, err error) {
	if errors.Is(err, entity.ErrUnsupportedChain) || errors.Is(err, entity.ErrUnsupportedStandard) {
		abortWithError(c, http.StatusUnprocessableEntity, err)
		return
	}
	h.logger.Error("Failed to start watch session", "error", err)
	abortWithError(c, http.StatusInternalServerError, err)
}

// Watch starts a background session. Its updates are readable through GetStatus.
func (h *StatusHandler) Watch(c *gin.Context) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	chain, ok := h.parseChain(c, req.Chain)
	if !ok {
		return
	}

	updates, err := h.watcher.Watch(h.baseCtx, chain, req.TxHash)
	if err != nil {
		h.startError(c, err)
		return
	}
	go func() {
		for u := range updates {
			if u.Final {
				h.logger.Info("Transaction reached final status", "chain", u.Chain, "txHash", u.TxHash, "status", u.Result.Status())
			}
		}
	}()

	first, _ := h.watcher.LastKnown(chain, req.TxHash)
	if first.Result == nil {
		first = entity.TxStatusUpdate{Chain: chain, TxHash: req.TxHash, Result: entity.Pending{}}
	}
	c.JSON(http.StatusAccepted, newStatusResponse(first))
}

// GetStatus returns the latest update observed for a transaction.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	chain, ok := h.parseChain(c, c.Param("chain"))
	if !ok {
		return
	}
	update, found := h.watcher.LastKnown(chain, c.Param("hash"))
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "transaction is not being watched"})
		return
	}
	c.JSON(http.StatusOK, newStatusResponse(update))
}

// StopWatch cancels the running session of a transaction.
func (h *StatusHandler) StopWatch(c *gin.Context) {
	chain, ok := h.parseChain(c, c.Param("chain"))
	if !ok {
		return
	}
	if !h.watcher.Stop(chain, c.Param("hash")) {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "no running watch session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream watches a transaction for the lifetime of the request and pushes
// every update as a server-sent "status" event.
func (h *StatusHandler) Stream(c *gin.Context) {
	chain, ok := h.parseChain(c, c.Param("chain"))
	if !ok {
		return
	}
	updates, err := h.watcher.Watch(c.Request.Context(), chain, c.Param("hash"))
	if err != nil {
		h.startError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		u, open := <-updates
		if !open {
			return false
		}
		c.SSEvent("status", newStatusResponse(u))
		return !u.Final
	})
}
