package service

import (
	"context"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/metrics"
)

const maxBackoffFactor = 4

// pollingTxStatusImpl implements port.TxStatusPoller.
type pollingTxStatusImpl struct {
	repo   port.StatusRepository
	config port.TxStatusConfigurationProvider
	logger port.Logger
}

// NewPollingTxStatus creates a poller checking the repository at each chain's configured interval.
func NewPollingTxStatus(repo port.StatusRepository, config port.TxStatusConfigurationProvider, l port.Logger) port.TxStatusPoller {
	return &pollingTxStatusImpl{repo: repo, config: config, logger: l}
}

// Poll emits a verdict per successful check until a terminal verdict or cancellation,
// then closes the channel. Failed checks emit nothing and back off.
func (p *pollingTxStatusImpl) Poll(ctx context.Context, chain entity.Chain, txHash string) (<-chan entity.TransactionResult, error) {
	cfg, err := p.config.GetConfigurationForChain(chain)
	if err != nil {
		return nil, err
	}

	out := make(chan entity.TransactionResult)
	go p.run(ctx, chain, txHash, cfg.PollInterval, out)
	return out, nil
}

func (p *pollingTxStatusImpl) run(ctx context.Context, chain entity.Chain, txHash string, interval time.Duration, out chan<- entity.TransactionResult) {
	defer close(out)

	var failures int
	for {
		wait := interval
		result, err := p.repo.CheckStatus(ctx, chain, txHash)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			wait = backoff(interval, failures)
			metrics.StatusCheckErrors.WithLabelValues(string(chain)).Inc()
			p.logger.Warn("Status check failed", "chain", chain, "txHash", txHash, "attempt", failures, "retryIn", wait, "error", err)
		} else {
			failures = 0
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
			if result.IsTerminal() {
				return
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// backoff returns interval * 2^(failures-1), capped at 4 * interval.
func backoff(interval time.Duration, failures int) time.Duration {
	if failures <= 1 {
		return interval
	}
	if failures > 3 {
		return maxBackoffFactor * interval
	}
	return min(interval<<(failures-1), maxBackoffFactor*interval)
}
