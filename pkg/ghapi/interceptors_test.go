package ghapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := ghapi.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(_ context.Context, env *ghapi.RequestEnvelope) (*ghapi.RequestEnvelope, error) {
		executionOrder = append(executionOrder, "first")

		return env.WithHeader("X-Step", "first"), nil
	})

	chain.AddRequestInterceptor(func(_ context.Context, env *ghapi.RequestEnvelope) (*ghapi.RequestEnvelope, error) {
		executionOrder = append(executionOrder, "second:"+env.HeaderValue("X-Step"))

		return nil, nil
	})

	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	got, err := chain.ExecuteRequestInterceptors(ctx, env)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second:first"}, executionOrder)
	assert.Equal(t, "first", got.HeaderValue("X-Step"))
	assert.Empty(t, env.Headers)
}

func TestInterceptorChain_ResponseInterceptors(t *testing.T) {
	t.Parallel()

	chain := ghapi.NewInterceptorChain()

	var executionOrder []string

	chain.AddResponseInterceptor(func(context.Context, *ghapi.RequestEnvelope, *ghapi.ResponseInfo) error {
		executionOrder = append(executionOrder, "first")

		return nil
	}).AddResponseInterceptor(func(context.Context, *ghapi.RequestEnvelope, *ghapi.ResponseInfo) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	err := chain.ExecuteResponseInterceptors(context.Background(), env, &ghapi.ResponseInfo{StatusCode: 200})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_ErrorStopsChain(t *testing.T) {
	t.Parallel()

	called := false
	chain := ghapi.NewInterceptorChain().
		AddRequestInterceptor(func(context.Context, *ghapi.RequestEnvelope) (*ghapi.RequestEnvelope, error) {
			return nil, errConnRefused
		}).
		AddRequestInterceptor(func(_ context.Context, env *ghapi.RequestEnvelope) (*ghapi.RequestEnvelope, error) {
			called = true

			return env, nil
		})

	_, err := chain.ExecuteRequestInterceptors(context.Background(), ghapi.NewRequest(http.MethodGet, "https://api.github.com"))
	require.ErrorIs(t, err, errConnRefused)
	assert.Contains(t, err.Error(), "request interceptor failed")
	assert.False(t, called)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	headers := map[string]string{
		"X-Custom-Header":      "custom-value",
		"X-GitHub-Api-Version": "2022-11-28",
	}

	interceptor := ghapi.HeaderInterceptor(headers)
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	got, err := interceptor(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", got.HeaderValue("X-Custom-Header"))
	assert.Equal(t, "2022-11-28", got.HeaderValue("x-github-api-version"))
}

func TestHeaderInterceptor_StableOrder(t *testing.T) {
	t.Parallel()

	headers := map[string]string{
		"X-Zulu":    "z",
		"X-Alpha":   "a",
		"X-Mike":    "m",
		"X-Charlie": "c",
		"X-Echo":    "e",
	}

	interceptor := ghapi.HeaderInterceptor(headers)
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test").WithHeader("X-First", "1")

	expected := []ghapi.Header{
		{Name: "X-First", Value: "1"},
		{Name: "X-Alpha", Value: "a"},
		{Name: "X-Charlie", Value: "c"},
		{Name: "X-Echo", Value: "e"},
		{Name: "X-Mike", Value: "m"},
		{Name: "X-Zulu", Value: "z"},
	}

	for range 10 {
		got, err := interceptor(context.Background(), env)
		require.NoError(t, err)
		assert.Equal(t, expected, got.Headers)
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := ghapi.RequestIDInterceptor()
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	first, err := interceptor(context.Background(), env)
	require.NoError(t, err)

	second, err := interceptor(context.Background(), env)
	require.NoError(t, err)

	assert.Len(t, first.HeaderValue("X-Request-Id"), 36)
	assert.NotEqual(t, first.HeaderValue("X-Request-Id"), second.HeaderValue("X-Request-Id"))

	tagged := env.WithHeader("X-Request-Id", "caller-chosen")

	kept, err := interceptor(context.Background(), tagged)
	require.NoError(t, err)
	assert.Equal(t, "caller-chosen", kept.HeaderValue("X-Request-Id"))
}

func TestRateLimitInterceptor_RespectsContext(t *testing.T) {
	t.Parallel()

	interceptor := ghapi.RateLimitInterceptor(0.001, 1)
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	_, err := interceptor(context.Background(), env)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = interceptor(ctx, env)
	require.Error(t, err)
}

func TestRateLimitTracker(t *testing.T) {
	t.Parallel()

	tracker := ghapi.NewRateLimitTracker()

	_, seen := tracker.Snapshot()
	assert.False(t, seen)

	resp := newFakeResponse(200, `{}`)
	resp.header.Set("X-RateLimit-Remaining", "42")
	resp.header.Set("X-RateLimit-Reset", "1700000000")

	err := tracker.Interceptor()(context.Background(), nil, &ghapi.ResponseInfo{Response: resp, StatusCode: 200})
	require.NoError(t, err)

	snap, seen := tracker.Snapshot()
	require.True(t, seen)
	assert.Equal(t, 42, snap.Remaining)
	assert.Equal(t, time.Unix(1_700_000_000, 0).Unix(), snap.ResetAt.Unix())

	// Responses without headers keep the last snapshot.
	err = tracker.Interceptor()(context.Background(), nil, &ghapi.ResponseInfo{Err: errConnRefused})
	require.NoError(t, err)

	snap, _ = tracker.Snapshot()
	assert.Equal(t, 42, snap.Remaining)
}

func TestCircuitBreaker(t *testing.T) {
	t.Parallel()

	config := &ghapi.CircuitBreakerConfig{
		Threshold:        2,
		Timeout:          50 * time.Millisecond,
		SuccessThreshold: 1,
	}
	breaker := ghapi.NewCircuitBreaker(config)

	reqInterceptor := breaker.RequestInterceptor()
	respInterceptor := breaker.ResponseInterceptor()

	ctx := context.Background()
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	fail := func() {
		_, err := reqInterceptor(ctx, env)
		require.NoError(t, err)
		require.NoError(t, respInterceptor(ctx, env, &ghapi.ResponseInfo{StatusCode: 502}))
	}

	fail()
	assert.False(t, breaker.Open())

	fail()
	assert.True(t, breaker.Open())

	_, err := reqInterceptor(ctx, env)
	require.ErrorIs(t, err, ghapi.ErrCircuitBreakerOpen)

	time.Sleep(80 * time.Millisecond)

	// Half-open lets a probe through; its success closes the circuit.
	_, err = reqInterceptor(ctx, env)
	require.NoError(t, err)
	require.NoError(t, respInterceptor(ctx, env, &ghapi.ResponseInfo{StatusCode: 200}))
	assert.False(t, breaker.Open())
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	t.Parallel()

	breaker := ghapi.NewCircuitBreaker(&ghapi.CircuitBreakerConfig{Threshold: 1, Timeout: time.Minute, SuccessThreshold: 1})
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/test")

	for range 3 {
		require.NoError(t, breaker.ResponseInterceptor()(context.Background(), env, &ghapi.ResponseInfo{StatusCode: 404}))
	}

	assert.False(t, breaker.Open())
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	env := ghapi.NewRequest(http.MethodGet, "https://api.github.com/rate_limit")

	_, err := ghapi.LoggingInterceptor(logger)(context.Background(), env)
	require.NoError(t, err)

	err = ghapi.LoggingResponseInterceptor(logger)(context.Background(), env, &ghapi.ResponseInfo{StatusCode: 200})
	require.NoError(t, err)

	err = ghapi.LoggingResponseInterceptor(logger)(context.Background(), env, &ghapi.ResponseInfo{Err: errConnRefused})
	require.NoError(t, err)

	assert.Equal(t, []string{"API Request", "API Response", "API Response Error"}, logger.messages())
}
