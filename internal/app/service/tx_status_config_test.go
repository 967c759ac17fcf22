package service

import (
	"testing"
	"time"

	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/configloader"
	"fee_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTxStatusTable(t *testing.T) {
	t.Parallel()

	table := DefaultTxStatusTable()
	for _, chain := range entity.AllChains() {
		_, ok := table[chain]
		assert.True(t, ok, "missing status configuration for %s", chain)
	}

	tests := []struct {
		chain    entity.Chain
		interval time.Duration
		maxWait  time.Duration
	}{
		{entity.Solana, 2 * time.Second, 2 * time.Minute},
		{entity.Ripple, 3 * time.Second, 2 * time.Minute},
		{entity.Ethereum, 5 * time.Second, 5 * time.Minute},
		{entity.Base, 3 * time.Second, 3 * time.Minute},
		{entity.Bitcoin, 30 * time.Second, 2 * time.Hour},
		{entity.BitcoinCash, 30 * time.Second, time.Hour},
		{entity.Dogecoin, 10 * time.Second, 20 * time.Minute},
		{entity.Cardano, 10 * time.Second, 10 * time.Minute},
		{entity.MayaChain, 5 * time.Second, 5 * time.Minute},
		{entity.Polkadot, 6 * time.Second, 5 * time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.interval, table[tt.chain].PollInterval, tt.chain)
		assert.Equal(t, tt.maxWait, table[tt.chain].MaxWait, tt.chain)
	}
}

func TestTxStatusConfigProvider(t *testing.T) {
	t.Parallel()

	p := NewTxStatusConfigProvider(configloader.TxStatusConfig{
		Disabled: []entity.Chain{entity.Polkadot},
		Overrides: map[entity.Chain]configloader.TxStatusChainConfig{
			entity.Ethereum: {PollIntervalSeconds: 12},
			entity.Ton:      {MaxWaitSeconds: 600},
		},
	}, logger.NewNop())

	cfg, err := p.GetConfigurationForChain(entity.Ethereum)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.MaxWait)

	cfg, err = p.GetConfigurationForChain(entity.Ton)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.MaxWait)

	_, err = p.GetConfigurationForChain(entity.Polkadot)
	require.ErrorIs(t, err, entity.ErrUnsupportedChain)
	assert.False(t, p.SupportsTxStatus(entity.Polkadot))
	assert.True(t, p.SupportsTxStatus(entity.Tron))

	chains := p.SupportedChains()
	assert.Len(t, chains, len(entity.AllChains())-1)
	assert.NotContains(t, chains, entity.Polkadot)
}
