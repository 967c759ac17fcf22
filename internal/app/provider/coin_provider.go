package provider

import (
	"sync"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/coinloader"
)

type coinProviderImpl struct {
	filePath string
	logger   port.Logger

	mu     sync.Mutex
	coins  []entity.Coin
	byKey  map[string]entity.Coin
	loaded bool
}

// NewCoinProvider creates a CoinProvider reading the catalog at filePath on first use.
func NewCoinProvider(filePath string, logger port.Logger) port.CoinProvider {
	return &coinProviderImpl{filePath: filePath, logger: logger}
}

// GetCoins loads the coin catalog and caches it after the first successful load.
func (p *coinProviderImpl) GetCoins() ([]entity.Coin, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err != nil {
		return nil, err
	}
	return append([]entity.Coin(nil), p.coins...), nil
}

// FindCoin returns the catalog entry of a ticker, falling back to the chain's native coin.
func (p *coinProviderImpl) FindCoin(chain entity.Chain, ticker string) (entity.Coin, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.load(); err == nil {
		if coin, ok := p.byKey[coinloader.CoinKey(chain, ticker)]; ok {
			return coin, true
		}
	}
	if chain.IsValid() && coinloader.CoinKey(chain, ticker) == coinloader.CoinKey(chain, chain.NativeTicker()) {
		return entity.NativeCoin(chain), true
	}
	return entity.Coin{}, false
}

func (p *coinProviderImpl) load() error {
	if p.loaded {
		return nil
	}
	p.logger.Debug("Loading coin catalog from disk", "path", p.filePath)
	coins, err := coinloader.LoadCoins(p.filePath, p.logger)
	if err != nil {
		p.logger.Error("Failed to load coin catalog", "path", p.filePath, "error", err)
		return err
	}

	p.byKey = make(map[string]entity.Coin, len(coins))
	for _, c := range coins {
		p.byKey[coinloader.CoinKey(c.Chain, c.Ticker)] = c
	}
	p.coins = coins
	p.loaded = true
	return nil
}
