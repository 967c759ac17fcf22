package networkdefinition

import (
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// EndpointProvider provides chain endpoints: built-in defaults merged with configured overrides.
type EndpointProvider struct {
	logger    port.Logger
	endpoints map[entity.Chain]entity.ChainEndpoint
}

// Predefined chain endpoints
var defaultEndpoints = []entity.ChainEndpoint{ //nolint:gochecknoglobals // Global for definitions
	{Chain: entity.Ethereum, ChainID: 1, PrimaryURL: "https://ethereum-rpc.publicnode.com", FallbackURLs: []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"}},
	{Chain: entity.BscChain, ChainID: 56, PrimaryURL: "https://1rpc.io/bnb", FallbackURLs: []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"}},
	{Chain: entity.Polygon, ChainID: 137, PrimaryURL: "https://polygon-rpc.com/", FallbackURLs: []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"}},
	{Chain: entity.Arbitrum, ChainID: 42161, PrimaryURL: "https://arb1.arbitrum.io/rpc", FallbackURLs: []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"}},
	{Chain: entity.Avalanche, ChainID: 43114, PrimaryURL: "https://api.avax.network/ext/bc/C/rpc", FallbackURLs: []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"}},
	{Chain: entity.Base, ChainID: 8453, PrimaryURL: "https://1rpc.io/base", FallbackURLs: []string{"https://base.publicnode.com", "https://base.llamarpc.com"}},
	{Chain: entity.Blast, ChainID: 81457, PrimaryURL: "https://rpc.ankr.com/blast", FallbackURLs: []string{"https://blast.blockpi.network/v1/rpc/public", "https://blastl2-mainnet.public.blastapi.io"}},
	{Chain: entity.CronosChain, ChainID: 25, PrimaryURL: "https://cronos-evm-rpc.publicnode.com", FallbackURLs: []string{"https://evm.cronos.org"}},
	{Chain: entity.Mantle, ChainID: 5000, PrimaryURL: "https://rpc.mantle.xyz"},
	{Chain: entity.Optimism, ChainID: 10, PrimaryURL: "https://op-pokt.nodies.app", FallbackURLs: []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"}},
	{Chain: entity.ZkSync, ChainID: 324, PrimaryURL: "https://mainnet.era.zksync.io"},

	{Chain: entity.Bitcoin, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "bitcoin"},
	{Chain: entity.BitcoinCash, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "bitcoin-cash"},
	{Chain: entity.Litecoin, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "litecoin"},
	{Chain: entity.Dogecoin, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "dogecoin"},
	{Chain: entity.Dash, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "dash"},
	{Chain: entity.Zcash, IndexerURL: "https://api.blockchair.com", IndexerChainKey: "zcash"},
	{Chain: entity.Cardano, PrimaryURL: "https://cardano-mainnet.blockfrost.io/api/v0"},

	{Chain: entity.GaiaChain, PrimaryURL: "https://cosmos-rest.publicnode.com"},
	{Chain: entity.Kujira, PrimaryURL: "https://kujira-rest.publicnode.com"},
	{Chain: entity.Dydx, PrimaryURL: "https://dydx-rest.publicnode.com"},
	{Chain: entity.Osmosis, PrimaryURL: "https://osmosis-rest.publicnode.com"},
	{Chain: entity.Terra, PrimaryURL: "https://terra-rest.publicnode.com"},
	{Chain: entity.TerraClassic, PrimaryURL: "https://terra-classic-lcd.publicnode.com"},
	{Chain: entity.Noble, PrimaryURL: "https://noble-api.polkachu.com"},
	{Chain: entity.Akash, PrimaryURL: "https://akash-rest.publicnode.com"},
	{Chain: entity.ThorChain, PrimaryURL: "https://thornode.ninerealms.com"},
	{Chain: entity.MayaChain, PrimaryURL: "https://mayanode.mayachain.info"},

	{Chain: entity.Solana, PrimaryURL: "https://api.mainnet-beta.solana.com"},
	{Chain: entity.Polkadot, PrimaryURL: "https://polkadot-rpc.publicnode.com", IndexerURL: "https://polkadot.api.subscan.io"},
	{Chain: entity.Sui, PrimaryURL: "https://fullnode.mainnet.sui.io:443"},
	{Chain: entity.Ton, PrimaryURL: "https://toncenter.com"},
	{Chain: entity.Ripple, PrimaryURL: "https://xrplcluster.com", FallbackURLs: []string{"https://s1.ripple.com:51234"}},
	{Chain: entity.Tron, PrimaryURL: "https://api.trongrid.io"},
}

// NewEndpointProvider creates a provider with the built-in endpoints, replacing the
// fields set in overrides. Overrides for unknown chains are skipped.
func NewEndpointProvider(log port.Logger, overrides []entity.ChainEndpoint) *EndpointProvider {
	p := &EndpointProvider{
		logger:    log,
		endpoints: make(map[entity.Chain]entity.ChainEndpoint, len(defaultEndpoints)),
	}
	for _, ep := range defaultEndpoints {
		p.endpoints[ep.Chain] = ep
	}

	for _, o := range overrides {
		if !o.Chain.IsValid() {
			p.logger.Warn(fmt.Sprintf("Endpoint override for unknown chain '%s'. Skipping.", o.Chain))
			continue
		}
		ep := p.endpoints[o.Chain]
		ep.Chain = o.Chain
		if o.PrimaryURL != "" {
			ep.PrimaryURL = o.PrimaryURL
		}
		if o.FallbackURLs != nil {
			ep.FallbackURLs = o.FallbackURLs
		}
		if o.IndexerURL != "" {
			ep.IndexerURL = o.IndexerURL
		}
		if o.APIKey != "" {
			ep.APIKey = o.APIKey
		}
		if o.IndexerChainKey != "" {
			ep.IndexerChainKey = o.IndexerChainKey
		}
		if o.ChainID != 0 {
			ep.ChainID = o.ChainID
		}
		p.endpoints[o.Chain] = ep
		p.logger.Debug(fmt.Sprintf("Endpoint for '%s' overridden from configuration.", o.Chain), "primary", ep.PrimaryURL)
	}

	p.logger.Info(fmt.Sprintf("EndpointProvider initialized. Known chains: %d", len(p.endpoints)))
	return p
}

// GetAllEndpoints returns the endpoints in AllChains order.
func (p *EndpointProvider) GetAllEndpoints() []entity.ChainEndpoint {
	if p == nil {
		return []entity.ChainEndpoint{}
	}
	out := make([]entity.ChainEndpoint, 0, len(p.endpoints))
	for _, c := range entity.AllChains() {
		if ep, ok := p.endpoints[c]; ok {
			out = append(out, ep)
		}
	}
	return out
}

// GetEndpoint returns the endpoint of a chain.
func (p *EndpointProvider) GetEndpoint(chain entity.Chain) (entity.ChainEndpoint, bool) {
	if p == nil {
		return entity.ChainEndpoint{}, false
	}
	ep, ok := p.endpoints[chain]
	return ep, ok
}

var _ port.ChainEndpointProvider = (*EndpointProvider)(nil)
