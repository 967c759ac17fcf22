package coinloader

import (
	"fmt"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/pkg/utils"
)

const DefaultCoinsFilePath = "data/coins.json"

// LoadCoins reads the coin catalog. Entries with an unknown chain, a token
// without contract address or a duplicate (chain, ticker) are skipped.
func LoadCoins(filePath string, logger port.Logger) ([]entity.Coin, error) {
	raw, err := utils.LoadJSONFile[[]entity.Coin](filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load coin catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	coins := make([]entity.Coin, 0, len(raw))
	for i, coin := range raw {
		if !coin.Chain.IsValid() {
			logger.Warn("Skipping coin with unknown chain", "file", filePath, "index", i, "chain", coin.Chain, "ticker", coin.Ticker)
			continue
		}
		if coin.Ticker == "" {
			logger.Warn("Skipping coin without ticker", "file", filePath, "index", i, "chain", coin.Chain)
			continue
		}
		if !coin.IsNativeToken && coin.ContractAddress == "" {
			logger.Warn("Skipping token without contract address", "file", filePath, "chain", coin.Chain, "ticker", coin.Ticker)
			continue
		}
		if coin.IsNativeToken && coin.Decimals == 0 {
			coin.Decimals = coin.Chain.NativeDecimals()
		}

		key := CoinKey(coin.Chain, coin.Ticker)
		if _, dup := seen[key]; dup {
			logger.Warn("Skipping duplicate coin", "file", filePath, "chain", coin.Chain, "ticker", coin.Ticker)
			continue
		}
		seen[key] = struct{}{}
		coins = append(coins, coin)
	}

	logger.Info("Coin catalog loaded", "path", filePath, "count", len(coins), "skipped", len(raw)-len(coins))
	return coins, nil
}

// CoinKey identifies a coin by chain and case-insensitive ticker.
func CoinKey(chain entity.Chain, ticker string) string {
	return string(chain) + "/" + strings.ToUpper(ticker)
}
