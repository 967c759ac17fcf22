package service

import (
	"context"
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/metrics"
)

// txStatusRepositoryImpl implements port.StatusRepository.
type txStatusRepositoryImpl struct {
	providers map[entity.TokenStandard]port.StatusProvider
	logger    port.Logger
}

// NewTxStatusRepository registers every provider under each standard it declares.
func NewTxStatusRepository(providers []port.StatusProvider, l port.Logger) port.StatusRepository {
	registry := make(map[entity.TokenStandard]port.StatusProvider)
	for _, p := range providers {
		for _, standard := range p.Standards() {
			if _, dup := registry[standard]; dup {
				l.Warn("Status provider registered twice, keeping the last one", "standard", standard)
			}
			registry[standard] = p
		}
	}
	return &txStatusRepositoryImpl{providers: registry, logger: l}
}

func (r *txStatusRepositoryImpl) CheckStatus(ctx context.Context, chain entity.Chain, txHash string) (entity.TransactionResult, error) {
	provider, ok := r.providers[chain.Standard()]
	if !ok {
		return nil, fmt.Errorf("%w: no status provider for %q", entity.ErrUnsupportedChain, chain)
	}

	result, err := provider.CheckStatus(ctx, txHash, chain)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Transaction status checked", "chain", chain, "txHash", txHash, "status", result.Status())
	metrics.StatusChecks.WithLabelValues(string(chain), string(result.Status())).Inc()
	return result, nil
}
