// Package bootstrap wires configuration, chain clients and services into a ready application.
package bootstrap

import (
	"fmt"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/app/provider"
	"fee_tracker/internal/app/service"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/coinloader"
	"fee_tracker/internal/infrastructure/configloader"
	"fee_tracker/internal/infrastructure/fee"
	clientprovider "fee_tracker/internal/infrastructure/network/client"
	networkdefinition "fee_tracker/internal/infrastructure/network/definition"
	"fee_tracker/internal/infrastructure/status"
	"fee_tracker/internal/infrastructure/watchlistloader"

	"go.uber.org/zap"
)

// App holds the services shared by the HTTP server and the watch CLI.
type App struct {
	cfg *configloader.Config

	Endpoints port.ChainEndpointProvider
	Fees      port.FeeService
	FeeBatch  port.FeeBatchService
	TxConfig  port.TxStatusConfigurationProvider
	Statuses  port.StatusRepository
	Poller    port.TxStatusPoller
	Watcher   port.TxStatusWatcher
	Coins     port.CoinProvider
	Watchlist port.WatchlistProvider
	Logger    port.Logger
	ZapLogger *zap.Logger
}

var _ port.ConfigProvider = (*App)(nil)

// GetConfig returns the configuration the application was built from.
func (a *App) GetConfig() *configloader.Config { return a.cfg }

// New builds every client, strategy, status provider and service from cfg.
func New(cfg *configloader.Config, zapLogger *zap.Logger, appLogger port.Logger) (*App, error) {
	endpoints := networkdefinition.NewEndpointProvider(appLogger, cfg.Chains)

	opts := clientprovider.DefaultOptions()
	opts.Timeout = time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second
	opts.RateLimit = cfg.Performance.RateLimit
	opts.BurstLimit = cfg.Performance.BurstLimit
	opts.RetryCount = cfg.Performance.RetryCount
	paramsTTL := time.Duration(cfg.Cache.ChainParamsTTLMinutes) * time.Minute

	endpoint := func(chain entity.Chain) entity.ChainEndpoint {
		ep, ok := endpoints.GetEndpoint(chain)
		if !ok {
			appLogger.Warn("No endpoint configured for chain", "chain", chain)
			ep = entity.ChainEndpoint{Chain: chain}
		}
		return ep
	}

	evmClients := clientprovider.NewEVMClientProvider(
		endpoints,
		appLogger,
		time.Duration(cfg.Performance.ConnectionTimeoutSeconds)*time.Second,
		time.Duration(cfg.Performance.RPCCallTimeoutSeconds)*time.Second,
	)
	utxoClient := clientprovider.NewUTXOClient(endpoints, zapLogger, opts)
	cardanoClient := clientprovider.NewCardanoClient(endpoint(entity.Cardano), zapLogger, opts)
	cosmosClient := clientprovider.NewCosmosClient(endpoints, zapLogger, opts)
	thorClient := clientprovider.NewThorChainClient(endpoint(entity.ThorChain), zapLogger, opts, paramsTTL)
	solanaClient := clientprovider.NewSolanaClient(endpoint(entity.Solana), zapLogger, opts)
	suiClient := clientprovider.NewSuiClient(endpoint(entity.Sui), zapLogger, opts)
	tonClient := clientprovider.NewTonClient(endpoint(entity.Ton), zapLogger, opts)
	polkadotClient := clientprovider.NewPolkadotClient(endpoint(entity.Polkadot), zapLogger, opts)
	rippleClient := clientprovider.NewRippleClient(endpoint(entity.Ripple), zapLogger, opts)
	tronClient := clientprovider.NewTronClient(endpoint(entity.Tron), zapLogger, opts, paramsTTL)

	defaults, err := fee.NewDefaultFeeTable().WithOverrides(cfg.Fees.Overrides, cfg.Fees.GasPricesWei)
	if err != nil {
		return nil, fmt.Errorf("failed to apply fee overrides: %w", err)
	}

	strategies := []port.FeeStrategy{
		fee.NewEVMFeeStrategy(evmClients, defaults, appLogger),
		fee.NewUTXOFeeStrategy(utxoClient, defaults, appLogger),
		fee.NewCardanoFeeStrategy(cardanoClient, defaults, appLogger),
		fee.NewCosmosFeeStrategy(cosmosClient, defaults, appLogger),
		fee.NewThorChainFeeStrategy(thorClient, defaults, appLogger),
		fee.NewSolanaFeeStrategy(solanaClient, defaults, appLogger),
		fee.NewSuiFeeStrategy(suiClient, defaults, appLogger),
		fee.NewTonFeeStrategy(tonClient, defaults, appLogger),
		fee.NewPolkadotFeeStrategy(polkadotClient, defaults, appLogger),
		fee.NewRippleFeeStrategy(rippleClient, defaults, appLogger),
		fee.NewTronFeeStrategy(tronClient, defaults, appLogger),
	}
	fees := service.NewFeeService(strategies, appLogger)

	providers := []port.StatusProvider{
		status.NewEVMStatusProvider(evmClients, appLogger),
		status.NewUTXOStatusProvider(utxoClient),
		status.NewCardanoStatusProvider(cardanoClient),
		status.NewCosmosStatusProvider(cosmosClient),
		status.NewSolanaStatusProvider(solanaClient),
		status.NewSuiStatusProvider(suiClient),
		status.NewTonStatusProvider(tonClient),
		status.NewPolkadotStatusProvider(polkadotClient),
		status.NewRippleStatusProvider(rippleClient),
		status.NewTronStatusProvider(tronClient),
	}
	statuses := service.NewTxStatusRepository(providers, appLogger)
	txConfig := service.NewTxStatusConfigProvider(cfg.TxStatus, appLogger)
	poller := service.NewPollingTxStatus(statuses, txConfig, appLogger)
	watcher := service.NewTxStatusWatcher(poller, txConfig, time.Duration(cfg.Cache.StatusTTLMinutes)*time.Minute, appLogger)

	coinsFile := cfg.CoinsFile
	if coinsFile == "" {
		coinsFile = coinloader.DefaultCoinsFilePath
	}
	watchlistFile := cfg.WatchlistFile
	if watchlistFile == "" {
		watchlistFile = watchlistloader.DefaultWatchlistFilePath
	}

	return &App{
		cfg:       cfg,
		Endpoints: endpoints,
		Fees:      fees,
		FeeBatch:  service.NewFeeBatchService(fees, appLogger, cfg.Performance.MaxConcurrentRoutines),
		TxConfig:  txConfig,
		Statuses:  statuses,
		Poller:    poller,
		Watcher:   watcher,
		Coins:     provider.NewCoinProvider(coinsFile, appLogger),
		Watchlist: provider.NewWatchlistProvider(watchlistFile, appLogger),
		Logger:    appLogger,
		ZapLogger: zapLogger,
	}, nil
}
