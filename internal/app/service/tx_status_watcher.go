package service

import (
	"context"
	"sync"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
)

type watchSession struct {
	cancel context.CancelFunc
}

// txStatusWatcherImpl implements port.TxStatusWatcher.
type txStatusWatcherImpl struct {
	poller port.TxStatusPoller
	config port.TxStatusConfigurationProvider
	logger port.Logger
	last   *cache.Cache

	mu       sync.Mutex
	sessions map[string]*watchSession
}

// NewTxStatusWatcher creates a watcher remembering the latest update of each transaction for statusTTL.
func NewTxStatusWatcher(
	poller port.TxStatusPoller,
	config port.TxStatusConfigurationProvider,
	statusTTL time.Duration,
	l port.Logger,
) port.TxStatusWatcher {
	return &txStatusWatcherImpl{
		poller:   poller,
		config:   config,
		logger:   l,
		last:     cache.New(statusTTL, 2*statusTTL),
		sessions: make(map[string]*watchSession),
	}
}

func watchKey(chain entity.Chain, txHash string) string {
	return string(chain) + ":" + txHash
}

// Watch starts a session for the transaction, replacing any running session for the same hash.
// The channel is closed after the final update or when ctx is done.
func (w *txStatusWatcherImpl) Watch(ctx context.Context, chain entity.Chain, txHash string) (<-chan entity.TxStatusUpdate, error) {
	cfg, err := w.config.GetConfigurationForChain(chain)
	if err != nil {
		return nil, err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	results, err := w.poller.Poll(sessionCtx, chain, txHash)
	if err != nil {
		cancel()
		return nil, err
	}

	key := watchKey(chain, txHash)
	session := &watchSession{cancel: cancel}
	w.mu.Lock()
	if prev, ok := w.sessions[key]; ok {
		w.logger.Info("Replacing running watch session", "chain", chain, "txHash", txHash)
		prev.cancel()
	}
	w.sessions[key] = session
	w.mu.Unlock()
	metrics.ActiveWatches.Inc()

	updates := make(chan entity.TxStatusUpdate, 1)
	go w.run(sessionCtx, session, key, chain, txHash, cfg.MaxWait, results, updates)
	return updates, nil
}

func (w *txStatusWatcherImpl) run(
	ctx context.Context,
	session *watchSession,
	key string,
	chain entity.Chain,
	txHash string,
	maxWait time.Duration,
	results <-chan entity.TransactionResult,
	updates chan<- entity.TxStatusUpdate,
) {
	defer func() {
		session.cancel()
		w.mu.Lock()
		if w.sessions[key] == session {
			delete(w.sessions, key)
		}
		w.mu.Unlock()
		metrics.ActiveWatches.Dec()
		close(updates)
	}()

	started := time.Now()
	emit := func(result entity.TransactionResult, final bool) bool {
		update := entity.TxStatusUpdate{
			Chain:      chain,
			TxHash:     txHash,
			Result:     result,
			Elapsed:    time.Since(started),
			Final:      final,
			ObservedAt: time.Now(),
		}
		w.last.SetDefault(key, update)
		select {
		case updates <- update:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !emit(entity.Pending{}, false) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case result, ok := <-results:
			if !ok {
				return
			}
			final := result.IsTerminal()
			if _, notFound := result.(entity.NotFound); notFound && maxWait > 0 && time.Since(started) > maxWait {
				w.logger.Info("Transaction still unknown after max wait", "chain", chain, "txHash", txHash, "maxWait", maxWait)
				final = true
			}
			if !emit(result, final) || final {
				return
			}
		}
	}
}

// LastKnown returns the latest update of a transaction observed by any session.
func (w *txStatusWatcherImpl) LastKnown(chain entity.Chain, txHash string) (entity.TxStatusUpdate, bool) {
	v, ok := w.last.Get(watchKey(chain, txHash))
	if !ok {
		return entity.TxStatusUpdate{}, false
	}
	return v.(entity.TxStatusUpdate), true
}

// Stop cancels the running session of a transaction and reports whether one existed.
func (w *txStatusWatcherImpl) Stop(chain entity.Chain, txHash string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	session, ok := w.sessions[watchKey(chain, txHash)]
	if ok {
		session.cancel()
		delete(w.sessions, watchKey(chain, txHash))
	}
	return ok
}

// Close cancels every running session.
func (w *txStatusWatcherImpl) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, session := range w.sessions {
		session.cancel()
		delete(w.sessions, key)
	}
}
