package service

import (
	"fmt"
	"slices"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/configloader"
)

// DefaultTxStatusTable returns the built-in polling cadence of every tracked chain.
func DefaultTxStatusTable() map[entity.Chain]entity.TxStatusConfiguration {
	table := make(map[entity.Chain]entity.TxStatusConfiguration)
	set := func(cfg entity.TxStatusConfiguration, chains ...entity.Chain) {
		for _, c := range chains {
			table[c] = cfg
		}
	}

	set(entity.NewTxStatusConfiguration(2, 120), entity.Solana, entity.Sui)
	set(entity.NewTxStatusConfiguration(3, 120), entity.Ripple)
	set(entity.NewTxStatusConfiguration(5, 300),
		entity.Ethereum, entity.Avalanche, entity.BscChain, entity.Polygon, entity.CronosChain, entity.Mantle)
	set(entity.NewTxStatusConfiguration(3, 180),
		entity.Arbitrum, entity.Base, entity.Blast, entity.Optimism, entity.ZkSync)
	set(entity.NewTxStatusConfiguration(30, 7200), entity.Bitcoin)
	set(entity.NewTxStatusConfiguration(30, 3600), entity.BitcoinCash)
	set(entity.NewTxStatusConfiguration(15, 1800), entity.Litecoin, entity.Dash, entity.Zcash)
	set(entity.NewTxStatusConfiguration(10, 1200), entity.Dogecoin)
	set(entity.NewTxStatusConfiguration(10, 600), entity.Cardano)
	set(entity.NewTxStatusConfiguration(5, 300),
		entity.GaiaChain, entity.Kujira, entity.Dydx, entity.Osmosis, entity.Terra, entity.TerraClassic,
		entity.Noble, entity.Akash, entity.ThorChain, entity.MayaChain)
	set(entity.NewTxStatusConfiguration(3, 180), entity.Ton, entity.Tron)
	set(entity.NewTxStatusConfiguration(6, 300), entity.Polkadot)
	return table
}

// txStatusConfigProvider implements port.TxStatusConfigurationProvider over an immutable table.
type txStatusConfigProvider struct {
	table map[entity.Chain]entity.TxStatusConfiguration
}

// NewTxStatusConfigProvider applies the configured overrides and removals to the default table.
// Zero fields of an override keep the default value.
func NewTxStatusConfigProvider(cfg configloader.TxStatusConfig, l port.Logger) port.TxStatusConfigurationProvider {
	table := DefaultTxStatusTable()

	for chain, o := range cfg.Overrides {
		current := table[chain]
		if o.PollIntervalSeconds > 0 {
			current.PollInterval = time.Duration(o.PollIntervalSeconds) * time.Second
		}
		if o.MaxWaitSeconds > 0 {
			current.MaxWait = time.Duration(o.MaxWaitSeconds) * time.Second
		}
		if current.PollInterval <= 0 {
			l.Warn("Ignoring status override without poll interval", "chain", chain)
			continue
		}
		table[chain] = current
		l.Debug("Status polling overridden", "chain", chain, "interval", current.PollInterval, "maxWait", current.MaxWait)
	}
	for _, chain := range cfg.Disabled {
		delete(table, chain)
		l.Info("Status tracking disabled", "chain", chain)
	}
	return &txStatusConfigProvider{table: table}
}

func (p *txStatusConfigProvider) GetConfigurationForChain(chain entity.Chain) (entity.TxStatusConfiguration, error) {
	cfg, ok := p.table[chain]
	if !ok {
		return entity.TxStatusConfiguration{}, fmt.Errorf("%w: no status configuration for %q", entity.ErrUnsupportedChain, chain)
	}
	return cfg, nil
}

func (p *txStatusConfigProvider) SupportsTxStatus(chain entity.Chain) bool {
	_, ok := p.table[chain]
	return ok
}

// SupportedChains returns the tracked chains in their canonical order.
func (p *txStatusConfigProvider) SupportedChains() []entity.Chain {
	return slices.DeleteFunc(entity.AllChains(), func(c entity.Chain) bool {
		return !p.SupportsTxStatus(c)
	})
}
