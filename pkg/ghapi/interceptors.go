package ghapi

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
)

// ResponseInfo describes the outcome of one call for response interceptors.
// Response is nil when the backend failed before a status was received.
type ResponseInfo struct {
	Response   Response
	StatusCode int
	Err        error
	Duration   time.Duration
}

// RequestInterceptor runs before a request is built. It returns the envelope
// to send, typically a copy made with WithHeader.
type RequestInterceptor func(ctx context.Context, env *RequestEnvelope) (*RequestEnvelope, error)

// ResponseInterceptor runs after the backend returns, successful or not.
type ResponseInterceptor func(ctx context.Context, env *RequestEnvelope, info *ResponseInfo) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs all request interceptors in order, feeding
// each the envelope returned by the previous one.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
	for _, interceptor := range c.requestInterceptors {
		next, err := interceptor(ctx, env)
		if err != nil {
			return nil, fmt.Errorf("request interceptor failed: %w", err)
		}

		if next != nil {
			env = next
		}
	}

	return env, nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, env *RequestEnvelope, info *ResponseInfo) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, env, info)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
		logger.Debug("API Request", map[string]interface{}{
			"method": env.Method,
			"uri":    env.URI,
		})

		return env, nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, env *RequestEnvelope, info *ResponseInfo) error {
		fields := map[string]interface{}{
			"method":      env.Method,
			"uri":         env.URI,
			"status_code": info.StatusCode,
			"duration":    info.Duration.String(),
		}

		if info.Err != nil {
			fields["error"] = info.Err.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests in key order. Standard
// and Authorization headers are always applied afterwards by the backend.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	ordered := make([]Header, 0, len(headers))
	for _, key := range slices.Sorted(maps.Keys(headers)) {
		ordered = append(ordered, Header{Name: key, Value: headers[key]})
	}

	return func(_ context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
		for _, header := range ordered {
			env = env.WithHeader(header.Name, header.Value)
		}

		return env, nil
	}
}

// RequestIDInterceptor tags every request with a fresh X-Request-Id unless
// the envelope already carries one.
func RequestIDInterceptor() RequestInterceptor {
	return func(_ context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
		if env.HeaderValue(constants.HeaderRequestID) != "" {
			return env, nil
		}

		return env.WithHeader(constants.HeaderRequestID, uuid.NewString()), nil
	}
}

// RateLimitInterceptor implements client-side rate limiting.
func RateLimitInterceptor(requestsPerSecond float64, burst int) RequestInterceptor {
	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(ctx context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
		err := limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}

		return env, nil
	}
}

// RateLimitTracker remembers the most recent rate-limit headers seen.
type RateLimitTracker struct {
	mu       sync.RWMutex
	snapshot RateLimitSnapshot
	seen     bool
}

// NewRateLimitTracker creates an empty tracker.
func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Interceptor returns the response interceptor that feeds the tracker.
func (t *RateLimitTracker) Interceptor() ResponseInterceptor {
	return func(_ context.Context, _ *RequestEnvelope, info *ResponseInfo) error {
		snap, ok := ParseRateLimit(info.Response)
		if !ok {
			return nil
		}

		t.mu.Lock()
		t.snapshot = snap
		t.seen = true
		t.mu.Unlock()

		return nil
	}
}

// Snapshot returns the last observed state and whether any was observed.
func (t *RateLimitTracker) Snapshot() (RateLimitSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.snapshot, t.seen
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	Threshold        int           // Number of failures before opening
	Timeout          time.Duration // Time before trying again
	SuccessThreshold int           // Number of successes to close
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

// CircuitBreaker stops sending requests after repeated transport failures or
// 5xx responses, and probes again after a timeout.
type CircuitBreaker struct {
	mu          sync.Mutex
	config      CircuitBreakerConfig
	failures    int
	successes   int
	state       circuitState
	lastFailure time.Time
	now         func() time.Time
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config *CircuitBreakerConfig) *CircuitBreaker {
	cfg := CircuitBreakerConfig{
		Threshold:        constants.CircuitBreakerThreshold,
		Timeout:          constants.CircuitBreakerTimeout,
		SuccessThreshold: constants.CircuitBreakerSuccessThreshold,
	}
	if config != nil {
		cfg = *config
	}

	return &CircuitBreaker{config: cfg, now: time.Now}
}

// Open reports whether requests are currently refused.
func (b *CircuitBreaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state == circuitOpen
}

// RequestInterceptor refuses requests while the circuit is open.
func (b *CircuitBreaker) RequestInterceptor() RequestInterceptor {
	return func(_ context.Context, env *RequestEnvelope) (*RequestEnvelope, error) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.state == circuitOpen {
			if b.now().Sub(b.lastFailure) <= b.config.Timeout {
				return nil, ErrCircuitBreakerOpen
			}

			b.state = circuitHalfOpen
			b.successes = 0
		}

		return env, nil
	}
}

// ResponseInterceptor updates the circuit state from each outcome.
func (b *CircuitBreaker) ResponseInterceptor() ResponseInterceptor {
	return func(_ context.Context, _ *RequestEnvelope, info *ResponseInfo) error {
		b.mu.Lock()
		defer b.mu.Unlock()

		if info.Err != nil || info.StatusCode >= 500 {
			b.failures++
			b.lastFailure = b.now()

			if b.failures >= b.config.Threshold || b.state == circuitHalfOpen {
				b.state = circuitOpen
			}

			return nil
		}

		switch b.state {
		case circuitHalfOpen:
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.state = circuitClosed
				b.failures = 0
			}
		case circuitClosed:
			b.failures = 0
		case circuitOpen:
		}

		return nil
	}
}
