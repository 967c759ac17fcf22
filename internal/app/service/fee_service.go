package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/metrics"
)

// feeServiceImpl implements port.FeeService.
type feeServiceImpl struct {
	strategies map[entity.TokenStandard]port.FeeStrategy
	logger     port.Logger
}

// NewFeeService builds the strategy registry. A later strategy for the same standard replaces an earlier one.
func NewFeeService(strategies []port.FeeStrategy, l port.Logger) port.FeeService {
	registry := make(map[entity.TokenStandard]port.FeeStrategy, len(strategies))
	for _, s := range strategies {
		if _, dup := registry[s.Standard()]; dup {
			l.Warn("Fee strategy registered twice, keeping the last one", "standard", s.Standard())
		}
		registry[s.Standard()] = s
	}
	return &feeServiceImpl{strategies: registry, logger: l}
}

// CalculateFees returns the live fee, or the strategy's default fee when the live estimate fails.
func (s *feeServiceImpl) CalculateFees(ctx context.Context, tx entity.BlockchainTransaction) (entity.Fee, error) {
	chain := entity.TxChain(tx)
	strategy, ok := s.strategies[chain.Standard()]
	if !ok {
		metrics.ObserveFeeEstimation(string(chain), metrics.OutcomeError, time.Now())
		return nil, fmt.Errorf("%w: %q (chain %q)", entity.ErrUnsupportedStandard, chain.Standard(), chain)
	}

	started := time.Now()
	fee, err := strategy.CalculateFees(ctx, tx)
	if err == nil {
		err = entity.ValidateFee(fee)
	}
	if err == nil {
		metrics.ObserveFeeEstimation(string(chain), metrics.OutcomeLive, started)
		return fee, nil
	}

	s.logger.Warn("Live fee estimation failed, using default fee", "chain", chain, "ticker", tx.Common().Coin.Ticker, "error", err)
	metrics.ObserveFeeEstimation(string(chain), metrics.OutcomeDefault, started)

	fee, err = strategy.CalculateDefaultFees(tx)
	if err == nil {
		err = entity.ValidateFee(fee)
	}
	if err != nil {
		s.logger.Error("No default fee available", "chain", chain, "error", err)
		return entity.BasicFee{Amount: new(big.Int)}, nil
	}
	return fee, nil
}
