package provider

import (
	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/watchlistloader"
)

type watchlistProviderImpl struct {
	filePath string
	logger   port.Logger
}

// NewWatchlistProvider creates a WatchlistProvider.
func NewWatchlistProvider(filePath string, logger port.Logger) port.WatchlistProvider {
	return &watchlistProviderImpl{filePath: filePath, logger: logger}
}

// GetWatchItems loads the transactions to track from the configured file.
func (p *watchlistProviderImpl) GetWatchItems() ([]entity.WatchItem, error) {
	p.logger.Debug("Loading watch list from file", "path", p.filePath)
	items, err := watchlistloader.LoadWatchItems(p.filePath, p.logger)
	if err != nil {
		p.logger.Error("Failed to load watch list", "path", p.filePath, "error", err)
		return nil, err
	}
	return items, nil
}
