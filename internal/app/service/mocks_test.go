package service

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"fee_tracker/internal/domain/entity"
)

var errRPC = errors.New("rpc unavailable")

type stubStrategy struct {
	standard   entity.TokenStandard
	live       entity.Fee
	liveErr    error
	def        entity.Fee
	defErr     error
	delay      time.Duration
	liveCalled int
	mu         sync.Mutex
}

func (s *stubStrategy) Standard() entity.TokenStandard { return s.standard }

func (s *stubStrategy) CalculateFees(ctx context.Context, _ entity.BlockchainTransaction) (entity.Fee, error) {
	s.mu.Lock()
	s.liveCalled++
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.live, s.liveErr
}

func (s *stubStrategy) CalculateDefaultFees(entity.BlockchainTransaction) (entity.Fee, error) {
	return s.def, s.defErr
}

func transferOn(chain entity.Chain) entity.Transfer {
	return entity.Transfer{TxCommon: entity.TxCommon{Coin: entity.NativeCoin(chain), Amount: big.NewInt(1), To: "dest"}}
}

type scriptedStep struct {
	result entity.TransactionResult
	err    error
}

// scriptedRepository replays steps in order and repeats the last one.
type scriptedRepository struct {
	mu    sync.Mutex
	steps []scriptedStep
	calls []time.Time
}

func (r *scriptedRepository) CheckStatus(context.Context, entity.Chain, string) (entity.TransactionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, time.Now())
	step := r.steps[min(len(r.calls)-1, len(r.steps)-1)]
	return step.result, step.err
}

func (r *scriptedRepository) callTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.calls...)
}

type fixedConfig struct {
	cfg entity.TxStatusConfiguration
}

func (c fixedConfig) GetConfigurationForChain(chain entity.Chain) (entity.TxStatusConfiguration, error) {
	if !c.SupportsTxStatus(chain) {
		return entity.TxStatusConfiguration{}, entity.ErrUnsupportedChain
	}
	return c.cfg, nil
}

func (c fixedConfig) SupportsTxStatus(chain entity.Chain) bool { return chain != entity.Zcash }

func (c fixedConfig) SupportedChains() []entity.Chain { return []entity.Chain{entity.Ethereum} }

func drain[T any](ch <-chan T, timeout time.Duration) ([]T, bool) {
	var out []T
	deadline := time.After(timeout)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return out, true
			}
			out = append(out, v)
		case <-deadline:
			return out, false
		}
	}
}
