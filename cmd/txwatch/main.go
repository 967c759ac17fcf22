package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fee_tracker/internal/app/bootstrap"
	"fee_tracker/internal/domain/entity"
	"fee_tracker/internal/infrastructure/configloader"
	"fee_tracker/internal/pkg/logger"
	"fee_tracker/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", utils.GetEnv("CONFIG_PATH", "config/config.yaml"), "path to the YAML configuration")
	watchlistPath := flag.String("watchlist", "", "file with chain,txHash lines (overrides watchlistFile)")
	plain := flag.Bool("plain", false, "log with the JSON slog handler instead of zap")
	flag.Parse()

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *watchlistPath != "" {
		cfg.WatchlistFile = *watchlistPath
	}

	// chain clients stay quiet in plain mode
	zapLogger := zap.NewNop()
	if *plain {
		logger.InitSlog(cfg.Logging.Level)
	} else {
		zapLogger, err = logger.InitZap(cfg.Logging.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize zap logger: %v\n", err)
			os.Exit(1)
		}
		defer zapLogger.Sync() //nolint:errcheck
	}

	appLogger := logger.NewSlogAdapter()
	app, err := bootstrap.New(cfg, zapLogger, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}
	defer app.Watcher.Close()

	items, err := app.Watchlist.GetWatchItems()
	if err != nil {
		logger.Fatal("Failed to load watch list", "error", err)
	}
	if len(items) == 0 {
		logger.Info("Watch list is empty, nothing to do")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := watchAll(ctx, app, items, cfg.Performance.MaxConcurrentRoutines)
	for status, count := range summary {
		logger.Info("Watch summary", "status", status, "transactions", count)
	}
}

// watchAll tracks the items in batches of maxConcurrent sessions and counts the last status of each.
func watchAll(ctx context.Context, app *bootstrap.App, items []entity.WatchItem, maxConcurrent int) map[entity.TxStatus]int {
	var mu sync.Mutex
	summary := make(map[entity.TxStatus]int)

	for _, batch := range utils.Batch(items, maxConcurrent) {
		g, gctx := errgroup.WithContext(ctx)
		for _, item := range batch {
			g.Go(func() error {
				last := watchOne(gctx, app, item)
				mu.Lock()
				summary[last]++
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
		if ctx.Err() != nil {
			logger.Warn("Interrupted, remaining transactions are not watched")
			break
		}
	}
	return summary
}

func watchOne(ctx context.Context, app *bootstrap.App, item entity.WatchItem) entity.TxStatus {
	if !app.TxConfig.SupportsTxStatus(item.Chain) {
		logger.Warn("Status tracking is not supported for chain", "chain", item.Chain, "txHash", item.TxHash)
		return entity.TxStatusNotFound
	}
	updates, err := app.Watcher.Watch(ctx, item.Chain, item.TxHash)
	if err != nil {
		logger.Error("Failed to start watch session", "chain", item.Chain, "txHash", item.TxHash, "error", err)
		return entity.TxStatusNotFound
	}

	last := entity.TxStatusPending
	for u := range updates {
		last = u.Result.Status()
		args := []any{"chain", u.Chain, "txHash", u.TxHash, "status", last, "elapsed", u.Elapsed, "final", u.Final}
		if reason := entity.FailureReason(u.Result); reason != "" {
			args = append(args, "reason", reason)
		}
		logger.Info("Transaction status", args...)
	}
	return last
}
