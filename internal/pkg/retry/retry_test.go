package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpErr int

func (e httpErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e httpErr) HTTPStatus() int { return int(e) }

func TestExecute(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after retryable failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		res, err := Execute(context.Background(), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, httpErr(http.StatusBadGateway)
			}
			return 42, nil
		}, WithRetryWaitTime(time.Millisecond))

		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := Execute(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, httpErr(http.StatusNotFound)
		}, WithRetryWaitTime(time.Millisecond))

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.NotErrorIs(t, err, ErrRetryTimeout)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := Execute(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, httpErr(http.StatusServiceUnavailable)
		}, WithRetryCount(2), WithRetryWaitTime(time.Millisecond))

		require.ErrorIs(t, err, ErrRetryTimeout)
		assert.Equal(t, 2, calls)
	})

	t.Run("context cancelled between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := Execute(ctx, func(context.Context) (int, error) {
			cancel()
			return 0, httpErr(http.StatusInternalServerError)
		}, WithRetryWaitTime(time.Second))

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", httpErr(http.StatusTooManyRequests))))
	assert.False(t, IsRetryable(httpErr(http.StatusBadRequest)))
	assert.False(t, IsRetryable(errors.New("plain")))
}
