package configloader

import (
	"fmt"
	"os"

	"fee_tracker/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"` // 0 keeps SSE streams open
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines    int     `yaml:"maxConcurrentRoutines"`
	RPCCallTimeoutSeconds    int     `yaml:"rpcCallTimeoutSeconds"`
	ConnectionTimeoutSeconds int     `yaml:"connectionTimeoutSeconds"`
	RateLimit                float64 `yaml:"rateLimit"` // requests per second per client
	BurstLimit               int     `yaml:"burstLimit"`
	RetryCount               int     `yaml:"retryCount"`
}

// CacheConfig holds TTLs of the in-memory caches.
type CacheConfig struct {
	StatusTTLMinutes      int `yaml:"statusTTLMinutes"`
	ChainParamsTTLMinutes int `yaml:"chainParamsTTLMinutes"`
}

// FeesConfig adjusts the default fee table used when live estimation fails.
type FeesConfig struct {
	Overrides    map[entity.Chain]string `yaml:"overrides"`    // chain -> default fee amount, smallest unit
	GasPricesWei map[entity.Chain]string `yaml:"gasPricesWei"` // EVM chain -> default gas price
}

// TxStatusChainConfig is the polling cadence of a single chain.
type TxStatusChainConfig struct {
	PollIntervalSeconds int `yaml:"pollIntervalSeconds"`
	MaxWaitSeconds      int `yaml:"maxWaitSeconds"`
}

// TxStatusConfig adjusts the status configuration table.
type TxStatusConfig struct {
	Disabled  []entity.Chain                       `yaml:"disabled"`
	Overrides map[entity.Chain]TxStatusChainConfig `yaml:"overrides"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig           `yaml:"server"`
	Logging       LoggingConfig          `yaml:"logging"`
	Performance   PerformanceConfig      `yaml:"performance"`
	Cache         CacheConfig            `yaml:"cache"`
	Chains        []entity.ChainEndpoint `yaml:"chains"`
	Fees          FeesConfig             `yaml:"fees"`
	TxStatus      TxStatusConfig         `yaml:"txStatus"`
	CoinsFile     string                 `yaml:"coinsFile"`
	WatchlistFile string                 `yaml:"watchlistFile"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 10
	}
	if cfg.Server.IdleTimeoutSeconds <= 0 {
		cfg.Server.IdleTimeoutSeconds = 120
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
		logrus.Infof("Logging.Level not set, defaulting to %s", cfg.Logging.Level)
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
		logrus.Infof("Performance.MaxConcurrentRoutines not set, defaulting to %d", cfg.Performance.MaxConcurrentRoutines)
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
		logrus.Infof("Performance.RPCCallTimeoutSeconds not set, defaulting to %d seconds", cfg.Performance.RPCCallTimeoutSeconds)
	}
	if cfg.Performance.ConnectionTimeoutSeconds <= 0 {
		cfg.Performance.ConnectionTimeoutSeconds = 10
	}
	if cfg.Performance.RateLimit <= 0 {
		cfg.Performance.RateLimit = 10
		logrus.Infof("Performance.RateLimit not set, defaulting to %.0f req/s", cfg.Performance.RateLimit)
	}
	if cfg.Performance.BurstLimit <= 0 {
		cfg.Performance.BurstLimit = 20
	}
	if cfg.Performance.RetryCount <= 0 {
		cfg.Performance.RetryCount = 3
	}

	if cfg.Cache.StatusTTLMinutes <= 0 {
		cfg.Cache.StatusTTLMinutes = 60
		logrus.Infof("Cache.StatusTTLMinutes not set, defaulting to %d minutes", cfg.Cache.StatusTTLMinutes)
	}
	if cfg.Cache.ChainParamsTTLMinutes <= 0 {
		cfg.Cache.ChainParamsTTLMinutes = 10
		logrus.Infof("Cache.ChainParamsTTLMinutes not set, defaulting to %d minutes", cfg.Cache.ChainParamsTTLMinutes)
	}
}

func validate(cfg *Config) error {
	for _, c := range cfg.Chains {
		if !c.Chain.IsValid() {
			return fmt.Errorf("chains: %w: %q", entity.ErrUnknownChain, c.Chain)
		}
	}
	for c := range cfg.Fees.Overrides {
		if !c.IsValid() {
			return fmt.Errorf("fees.overrides: %w: %q", entity.ErrUnknownChain, c)
		}
	}
	for c := range cfg.Fees.GasPricesWei {
		if c.Standard() != entity.StandardEVM {
			return fmt.Errorf("fees.gasPricesWei: %q is not an EVM chain", c)
		}
	}
	for _, c := range cfg.TxStatus.Disabled {
		if !c.IsValid() {
			logrus.Warnf("txStatus.disabled lists unknown chain '%s'; ignoring it", c)
		}
	}
	for c, o := range cfg.TxStatus.Overrides {
		if !c.IsValid() {
			return fmt.Errorf("txStatus.overrides: %w: %q", entity.ErrUnknownChain, c)
		}
		if o.PollIntervalSeconds <= 0 || o.MaxWaitSeconds <= 0 {
			return fmt.Errorf("txStatus.overrides.%s: poll interval and max wait must be positive", c)
		}
	}
	return nil
}
