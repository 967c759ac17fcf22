package service

import (
	"context"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// feeBatchServiceImpl implements port.FeeBatchService.
type feeBatchServiceImpl struct {
	fees                  port.FeeService
	logger                port.Logger
	maxConcurrentRoutines int
}

// NewFeeBatchService creates a batch estimator running at most maxRoutines estimations at once.
func NewFeeBatchService(fees port.FeeService, l port.Logger, maxRoutines int) port.FeeBatchService {
	if maxRoutines <= 0 {
		maxRoutines = 1
	}
	return &feeBatchServiceImpl{fees: fees, logger: l, maxConcurrentRoutines: maxRoutines}
}

// EstimateBatch estimates every item. Results keep the request order.
func (s *feeBatchServiceImpl) EstimateBatch(ctx context.Context, items []entity.FeeRequestItem) []entity.FeeResultItem {
	s.logger.Debug("Estimating fee batch", "items", len(items))
	results := make([]entity.FeeResultItem, len(items))
	sem := semaphore.NewWeighted(int64(s.maxConcurrentRoutines))
	g, gctx := errgroup.WithContext(ctx)

	for i, item := range items {
		coin := item.Transaction.Common().Coin
		results[i] = entity.FeeResultItem{RequestID: item.ID, Chain: coin.Chain, Ticker: coin.Ticker}

		if err := sem.Acquire(gctx, 1); err != nil {
			results[i].Error = err
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			s.estimate(gctx, item, &results[i])
			// only cancellation of the caller's context stops the batch
			return ctx.Err()
		})
	}

	err := g.Wait()
	if err == nil {
		// items skipped at Acquire never start a goroutine
		err = ctx.Err()
	}
	if err != nil {
		s.logger.Warn("Fee batch interrupted", "items", len(items), "error", err)
	}

	var failed int
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
	}
	s.logger.Info("Fee batch estimated", "items", len(items), "failed", failed)
	return results
}

func (s *feeBatchServiceImpl) estimate(ctx context.Context, item entity.FeeRequestItem, out *entity.FeeResultItem) {
	fee, err := s.fees.CalculateFees(ctx, item.Transaction)
	if err != nil {
		s.logger.Warn("Fee estimation failed for batch item", "requestId", item.ID, "chain", out.Chain, "error", err)
		out.Error = err
		return
	}
	out.Fee = fee
	out.Amount = fee.Total()
	out.FormattedAmount = utils.FormatBigInt(out.Amount, out.Chain.NativeDecimals())
}
