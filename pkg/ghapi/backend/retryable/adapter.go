// Package retryable is a blocking backend built on hashicorp/go-retryablehttp.
package retryable

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

var _ ghapi.Adapter[*retryablehttp.Request, []byte] = (*Adapter)(nil)

// Adapter sends requests synchronously. Its FetchAsync is not implemented.
type Adapter struct {
	auth      ghapi.Auth
	userAgent string
	client    *retryablehttp.Client
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(userAgent string) Option {
	return func(a *Adapter) {
		if userAgent != "" {
			a.userAgent = userAgent
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Adapter) {
		a.client.HTTPClient.Timeout = timeout
	}
}

// WithRetry enables retries of connection errors, 429 and 5xx responses.
// Retries are off unless this option is given.
func WithRetry(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(a *Adapter) {
		a.client.RetryMax = maxRetries
		a.client.RetryWaitMin = waitMin
		a.client.RetryWaitMax = waitMax
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.client.HTTPClient = client
		}
	}
}

// WithLogger routes the retry library's own logging to logger.
func WithLogger(logger ghapi.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.client.Logger = leveledLogger{logger: logger}
		}
	}
}

// New creates an adapter. The connection pool is created here and shared by
// every request.
func New(auth ghapi.Auth, opts ...Option) *Adapter {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.RetryWaitMin = constants.DefaultRetryWaitMin
	client.RetryWaitMax = constants.DefaultRetryWaitMax
	client.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	client.Logger = nil
	// Failure statuses are returned as responses so endpoints can map them.
	client.CheckRetry = retryStatusPolicy
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	a := &Adapter{
		auth:      auth,
		userAgent: constants.DefaultUserAgent,
		client:    client,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Build converts env into a retryable request carrying the standard and
// auth headers.
func (a *Adapter) Build(env *ghapi.RequestEnvelope) (*retryablehttp.Request, error) {
	var body interface{}
	if env.Body != nil {
		body = env.Body
	}

	req, err := retryablehttp.NewRequest(env.Method, env.URI, body)
	if err != nil {
		return nil, newError(ghapi.KindTransport, "build", err)
	}

	internalhttp.ApplyHeaders(req.Header, env, a.auth, a.userAgent)

	return req, nil
}

// Fetch sends req and blocks until the response headers arrive.
func (a *Adapter) Fetch(ctx context.Context, req *retryablehttp.Request) (ghapi.Response, error) {
	resp, err := a.client.Do(req.WithContext(ctx))
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, newError(ghapi.KindTransport, "fetch", err)
	}

	return &Response{Response: internalhttp.NewResponse(resp)}, nil
}

// FetchAsync is not implemented by this backend.
func (a *Adapter) FetchAsync(_ context.Context, _ *retryablehttp.Request) *ghapi.Future[ghapi.Response] {
	return ghapi.Resolved[ghapi.Response](nil, unimplemented("fetch_async"))
}

// FromJSON encodes model as a request body.
func (a *Adapter) FromJSON(model any) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, newError(ghapi.KindJSON, "from_json", err)
	}

	return data, nil
}

// retryStatusPolicy retries like the library default but does not turn a
// final 5xx into an error, so the response reaches the endpoint's error map.
func retryStatusPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	if err == nil && ctx.Err() == nil {
		return retry, nil
	}

	return retry, checkErr
}

// leveledLogger satisfies retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger ghapi.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}

		out[key] = keysAndValues[i+1]
	}

	return out
}
