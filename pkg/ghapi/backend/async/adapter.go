// Package async is a non-blocking backend. FetchAsync returns a Future that
// resolves on its own goroutine; Fetch is not implemented.
package async

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

var _ ghapi.Adapter[*http.Request, []byte] = (*Adapter)(nil)

// Adapter sends requests on background goroutines.
type Adapter struct {
	auth      ghapi.Auth
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
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

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Adapter) {
		a.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		if client != nil {
			a.client = client
		}
	}
}

// WithRequestsPerSecond caps how fast futures may start their requests.
// A non-positive rate disables the limiter.
func WithRequestsPerSecond(rps float64, burst int) Option {
	return func(a *Adapter) {
		if rps <= 0 {
			a.limiter = nil

			return
		}

		a.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// New creates an adapter with its own connection pool.
func New(auth ghapi.Auth, opts ...Option) *Adapter {
	transport, ok := http.DefaultTransport.(*http.Transport)

	var rt http.RoundTripper = http.DefaultTransport
	if ok {
		rt = transport.Clone()
	}

	a := &Adapter{
		auth:      auth,
		userAgent: constants.DefaultUserAgent,
		client:    &http.Client{Timeout: constants.DefaultHTTPTimeout, Transport: rt},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Build converts env into an *http.Request carrying the standard and auth
// headers.
func (a *Adapter) Build(env *ghapi.RequestEnvelope) (*http.Request, error) {
	var body io.Reader
	if env.Body != nil {
		body = bytes.NewReader(env.Body)
	}

	//nolint:noctx // the context is attached in FetchAsync
	req, err := http.NewRequest(env.Method, env.URI, body)
	if err != nil {
		return nil, newError(ghapi.KindTransport, "build", err)
	}

	internalhttp.ApplyHeaders(req.Header, env, a.auth, a.userAgent)

	return req, nil
}

// Fetch is not implemented by this backend.
func (a *Adapter) Fetch(_ context.Context, _ *http.Request) (ghapi.Response, error) {
	return nil, unimplemented("fetch")
}

// FetchAsync starts req and returns immediately. Abandoning the future's
// Await cancels the request.
func (a *Adapter) FetchAsync(ctx context.Context, req *http.Request) *ghapi.Future[ghapi.Response] {
	return ghapi.NewFuture(ctx, func(ctx context.Context) (ghapi.Response, error) {
		if a.limiter != nil {
			err := a.limiter.Wait(ctx)
			if err != nil {
				return nil, newError(ghapi.KindTransport, "rate_limit", err)
			}
		}

		resp, err := a.client.Do(req.WithContext(ctx))
		if err != nil {
			return nil, newError(ghapi.KindTransport, "fetch_async", err)
		}

		return &Response{Response: internalhttp.NewResponse(resp)}, nil
	})
}

// FromJSON encodes model as a request body.
func (a *Adapter) FromJSON(model any) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, newError(ghapi.KindJSON, "from_json", err)
	}

	return data, nil
}
