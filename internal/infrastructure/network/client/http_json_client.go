package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"fee_tracker/internal/pkg/retry"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures the shared HTTP transport of the chain clients.
type Options struct {
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables limiting
	BurstLimit int
	RetryCount int
	RetryWait  time.Duration
}

// DefaultOptions returns the transport settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		Timeout:    10 * time.Second,
		RateLimit:  10,
		BurstLimit: 20,
		RetryCount: 3,
		RetryWait:  300 * time.Millisecond,
	}
}

// HTTPStatusError is returned for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus exposes the status code to retry classification.
func (e *HTTPStatusError) HTTPStatus() int { return e.StatusCode }

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode == fasthttp.StatusNotFound
}

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *RPCError           `json:"error"`
}

// jsonHTTPClient performs rate limited JSON requests with retries over fasthttp.
type jsonHTTPClient struct {
	client     *fasthttp.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	retryCount int
	retryWait  time.Duration
	headers    map[string]string
	logger     *zap.Logger
	nextID     atomic.Uint64
}

func newJSONHTTPClient(logger *zap.Logger, opts Options, headers map[string]string) *jsonHTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &jsonHTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout,
		},
		limiter:    limiter,
		timeout:    opts.Timeout,
		retryCount: opts.RetryCount,
		retryWait:  opts.RetryWait,
		headers:    headers,
		logger:     logger,
	}
}

// getJSON issues a GET and decodes the JSON body into out.
func (c *jsonHTTPClient) getJSON(ctx context.Context, url string, out any) error {
	body, err := c.doWithRetry(ctx, fasthttp.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.decode(url, body, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out.
func (c *jsonHTTPClient) postJSON(ctx context.Context, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request to %s: %w", url, err)
	}
	body, err := c.doWithRetry(ctx, fasthttp.MethodPost, url, payload)
	if err != nil {
		return err
	}
	return c.decode(url, body, out)
}

// callRPC performs a JSON-RPC 2.0 call against the first URL that answers.
// Transport failures move on to the next URL; RPC errors are returned as is.
func (c *jsonHTTPClient) callRPC(ctx context.Context, urls []string, method string, params, out any) error {
	if len(urls) == 0 {
		return fmt.Errorf("no RPC URL configured for %s", method)
	}
	if params == nil {
		params = []any{}
	}

	var lastErr error
	for _, url := range urls {
		req := rpcRequest{JSONRPC: "2.0", ID: c.nextID.Add(1), Method: method, Params: params}
		var resp rpcResponse
		err := c.postJSON(ctx, url, req, &resp)
		if err != nil {
			if retry.IsContextDoneErr(err) {
				return err
			}
			c.logger.Warn("RPC endpoint failed, trying next", zap.String("url", url), zap.String("method", method), zap.Error(err))
			lastErr = err
			continue
		}
		if resp.Error != nil {
			return resp.Error
		}
		if out == nil {
			return nil
		}
		if len(resp.Result) == 0 || string(resp.Result) == "null" {
			return c.decode(url, []byte("null"), out)
		}
		return c.decode(url, resp.Result, out)
	}
	return fmt.Errorf("all RPC endpoints failed for %s: %w", method, lastErr)
}

func (c *jsonHTTPClient) decode(url string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to unmarshal response", zap.String("url", url), zap.ByteString("responseBody", truncate(body)), zap.Error(err))
		return fmt.Errorf("failed to unmarshal response from %s: %w", url, err)
	}
	return nil
}

func (c *jsonHTTPClient) doWithRetry(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	return retry.Execute(ctx, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, method, url, payload)
	}, retry.WithRetryCount(c.retryCount), retry.WithRetryWaitTime(c.retryWait))
}

func (c *jsonHTTPClient) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait for %s: %w", url, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Debug("Sending request", zap.String("method", method), zap.String("url", url))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if payload != nil {
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBodyRaw(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s: %w", url, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", url, err)
		}
	}

	// The body is owned by resp and released with it.
	body := append([]byte(nil), resp.Body()...)
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		if code != fasthttp.StatusNotFound {
			c.logger.Warn("Request failed", zap.String("url", url), zap.Int("statusCode", code), zap.ByteString("responseBody", truncate(body)))
		}
		return nil, &HTTPStatusError{StatusCode: code, Body: string(truncate(body))}
	}
	return body, nil
}

func truncate(b []byte) []byte {
	const maxLogged = 512
	if len(b) > maxLogged {
		return b[:maxLogged]
	}
	return b
}

func joinURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + strings.Join(parts, "")
}
