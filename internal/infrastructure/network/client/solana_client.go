package client

import (
	"context"
	"fmt"
	"time"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SolanaClient reads a Solana JSON-RPC node through solana-go.
type SolanaClient struct {
	rpc            *rpc.Client
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
	logger         *zap.Logger
}

// NewSolanaClient creates a new Solana client for the endpoint's primary URL.
func NewSolanaClient(endpoint entity.ChainEndpoint, logger *zap.Logger, opts Options) *SolanaClient {
	c := &SolanaClient{
		rpc:            rpc.New(endpoint.PrimaryURL),
		rpcCallTimeout: opts.Timeout,
		logger:         logger.Named("SolanaClient"),
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.BurstLimit, 1))
	}
	if c.rpcCallTimeout <= 0 {
		c.rpcCallTimeout = DefaultOptions().Timeout
	}
	return c
}

func (c *SolanaClient) callContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	return ctx, cancel, nil
}

// RecentPrioritizationFees returns the per-slot prioritization fees paid for the accounts.
func (c *SolanaClient) RecentPrioritizationFees(ctx context.Context, accounts []string) ([]uint64, error) {
	keys := make(solana.PublicKeySlice, 0, len(accounts))
	for _, a := range accounts {
		if a == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(a)
		if err != nil {
			return nil, fmt.Errorf("invalid solana account %q: %w", a, err)
		}
		keys = append(keys, key)
	}

	ctx, cancel, err := c.callContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	res, err := c.rpc.GetRecentPrioritizationFees(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent prioritization fees: %w", err)
	}
	fees := make([]uint64, 0, len(res))
	for _, r := range res {
		fees = append(fees, r.PrioritizationFee)
	}
	c.logger.Debug("Fetched prioritization fees", zap.Int("slots", len(fees)))
	return fees, nil
}

// SignatureStatus returns nil without error when the signature is unknown.
func (c *SolanaClient) SignatureStatus(ctx context.Context, signature string) (*entity.SolanaSignatureStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("invalid solana signature %q: %w", signature, err)
	}

	ctx, cancel, err := c.callContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	res, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature status %s: %w", signature, err)
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return nil, nil
	}

	status := res.Value[0]
	return &entity.SolanaSignatureStatus{
		Slot:               status.Slot,
		ConfirmationStatus: string(status.ConfirmationStatus),
		Err:                status.Err,
	}, nil
}

var _ port.SolanaClient = (*SolanaClient)(nil)
