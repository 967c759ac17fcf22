package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"fee_tracker/internal/app/port"

	"github.com/valyala/fasthttp"
)

const (
	defaultRetryCount    = 3
	defaultRetryWaitTime = 300 * time.Millisecond
)

// ErrRetryTimeout is returned when every attempt failed with a retryable error.
var ErrRetryTimeout = errors.New("retry attempts exhausted")

// Config defines Execute configuration.
type Config struct {
	retryCount       int
	retryWaitTime    time.Duration
	isRetryableError func(err error) bool
	logger           port.Logger
}

// Option defines an Execute configuration option.
type Option func(c *Config)

func WithRetryCount(retryCount int) Option {
	return func(c *Config) {
		c.retryCount = retryCount
	}
}

func WithRetryWaitTime(retryWaitTime time.Duration) Option {
	return func(c *Config) {
		c.retryWaitTime = retryWaitTime
	}
}

func WithIsRetryableError(fn func(err error) bool) Option {
	return func(c *Config) {
		c.isRetryableError = fn
	}
}

func WithLogger(logger port.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// Execute runs handler until it succeeds, returns a non-retryable error, the context
// ends or the attempts run out. The last error is wrapped into ErrRetryTimeout.
func Execute[T any](ctx context.Context, handler func(context.Context) (T, error), options ...Option) (result T, err error) {
	config := Config{
		retryCount:       defaultRetryCount,
		retryWaitTime:    defaultRetryWaitTime,
		isRetryableError: IsRetryable,
	}
	for _, opt := range options {
		opt(&config)
	}
	if config.retryCount < 1 {
		config.retryCount = 1
	}

	for count := 0; count < config.retryCount; count++ {
		result, err = handler(ctx)
		if err == nil {
			return result, nil
		}
		if !config.isRetryableError(err) {
			return result, err
		}
		if config.logger != nil {
			config.logger.Debug("Retryable request failed", "attempt", count+1, "error", err)
		}
		if count == config.retryCount-1 {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(config.retryWaitTime):
		}
	}

	return result, errors.Join(ErrRetryTimeout, err)
}

// IsContextDoneErr returns true if the error is due to the context being cancelled or expired.
func IsContextDoneErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// statusCoder is implemented by HTTP errors that carry a response status.
type statusCoder interface {
	HTTPStatus() int
}

// IsRetryable classifies transient transport failures: network errors, timeouts,
// 5xx responses and rate limiting.
func IsRetryable(err error) bool {
	if err == nil || IsContextDoneErr(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrConnectionClosed) ||
		errors.Is(err, fasthttp.ErrNoFreeConns) || errors.Is(err, fasthttp.ErrDialTimeout) {
		return true
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatus()
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}
	return false
}
