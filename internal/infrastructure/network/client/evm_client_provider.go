package client

import (
	"fmt"
	"sync"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// evmClientProvider implements the port.EVMClientProvider interface.
type evmClientProvider struct {
	clients           map[entity.Chain]port.EVMClient
	mu                sync.Mutex
	endpoints         port.ChainEndpointProvider
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a new EVMClientProvider. Clients are dialed lazily.
func NewEVMClientProvider(
	endpoints port.ChainEndpointProvider,
	logger port.Logger,
	connectionTimeout time.Duration,
	rpcCallTimeout time.Duration,
) port.EVMClientProvider {
	return &evmClientProvider{
		clients:           make(map[entity.Chain]port.EVMClient),
		endpoints:         endpoints,
		logger:            logger,
		connectionTimeout: connectionTimeout,
		rpcCallTimeout:    rpcCallTimeout,
	}
}

// GetClient retrieves the client of an EVM chain.
// It caches clients to avoid reconnecting repeatedly.
func (p *evmClientProvider) GetClient(chain entity.Chain) (port.EVMClient, error) {
	if chain.Standard() != entity.StandardEVM {
		return nil, fmt.Errorf("%w: %s is not an EVM chain", entity.ErrUnsupportedChain, chain)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[chain]; exists {
		return client, nil
	}

	endpoint, ok := p.endpoints.GetEndpoint(chain)
	if !ok {
		return nil, fmt.Errorf("%w: no endpoint for %s", entity.ErrUnsupportedChain, chain)
	}

	p.logger.Info("Creating new EVM client", "chain", chain, "rpc_primary", endpoint.PrimaryURL)
	newClient, err := NewEVMClient(endpoint, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", "chain", chain, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", chain, err)
	}

	p.clients[chain] = newClient
	p.logger.Debug("Successfully created and cached new EVM client", "chain", chain)
	return newClient, nil
}
