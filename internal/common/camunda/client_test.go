package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"document-workers/internal/common/config"
	apperrors "document-workers/internal/common/errors"
)

func testClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{status.Error(codes.Unavailable, "gateway down"), true},
		{status.Error(codes.DeadlineExceeded, "slow"), true},
		{status.Error(codes.ResourceExhausted, "backpressure"), true},
		{status.Error(codes.NotFound, "no such job"), false},
		{status.Error(codes.PermissionDenied, "nope"), false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("validation failed"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRetryableZeebeError(tt.err), tt.err.Error())
	}
}

func TestExecuteWithRetry_RecoversFromTransientFailure(t *testing.T) {
	c := testClient(3)
	calls := 0
	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return status.Error(codes.Unavailable, "gateway down")
		}
		return nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	c := testClient(2)
	calls := 0
	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return status.Error(codes.Unavailable, "gateway down")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeEngineUnavailable, stdErr.Code)
	assert.Equal(t, 3, stdErr.Metadata["attempts"])
}

func TestExecuteWithRetry_PermanentErrorIsNotRetried(t *testing.T) {
	c := testClient(5)
	calls := 0
	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return status.Error(codes.InvalidArgument, "bad command")
	}, "complete")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.Normalize(err).Code)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	c := testClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.ExecuteWithRetry(ctx, func(context.Context) error {
		return status.Error(codes.Unavailable, "gateway down")
	}, "topology")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigFrom(t *testing.T) {
	cc := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", Timeout: 1500, RequestTimeout: 30000})
	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.Equal(t, 1500*time.Millisecond, cc.ConnectionTimeout)
	assert.Equal(t, 30*time.Second, cc.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}
