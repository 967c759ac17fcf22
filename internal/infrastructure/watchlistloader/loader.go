package watchlistloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

const DefaultWatchlistFilePath = "data/watchlist.txt"

// LoadWatchItems reads "chain,txHash" lines. Blank lines and lines starting
// with '#' are ignored; malformed lines and unknown chains are skipped.
func LoadWatchItems(filePath string, logger port.Logger) ([]entity.WatchItem, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open watch list %s: %w", filePath, err)
	}
	defer file.Close()

	var items []entity.WatchItem
	seen := make(map[entity.WatchItem]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rawChain, hash, ok := strings.Cut(line, ",")
		hash = strings.TrimSpace(hash)
		if !ok || hash == "" {
			logger.Warn("Skipping malformed watch list line", "file", filePath, "line_number", lineNum, "line", line)
			continue
		}
		chain, err := entity.ChainFromRaw(strings.TrimSpace(rawChain))
		if err != nil {
			logger.Warn("Skipping watch list line with unknown chain", "file", filePath, "line_number", lineNum, "error", err)
			continue
		}

		item := entity.WatchItem{Chain: chain, TxHash: hash}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning watch list %s: %w", filePath, err)
	}

	logger.Info("Watch list loaded", "count", len(items), "path", filePath)
	return items, nil
}
