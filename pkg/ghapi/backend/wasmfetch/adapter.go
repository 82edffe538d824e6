// Package wasmfetch is the backend for WebAssembly builds. Requests go
// through the host's fetch primitive and complete asynchronously; Fetch is
// not implemented. On js/wasm the browser's global fetch is used by default.
// Other platforms must supply a Host.
package wasmfetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

var _ ghapi.Adapter[*Request, Value] = (*Adapter)(nil)

// Request is the native request handed to the host.
type Request struct {
	URL     string
	Method  string
	Header  http.Header
	Body    Value
	HasBody bool
}

// Host performs fetches on behalf of the adapter.
type Host interface {
	Fetch(ctx context.Context, req *Request) (HostResponse, error)
}

// HostResponse is the host's response object.
type HostResponse interface {
	Status() int
	Header(name string) string
	// Text resolves the body as a string. Hosts allow it once.
	Text(ctx context.Context) (string, error)
}

// Adapter sends requests through a Host.
type Adapter struct {
	auth      ghapi.Auth
	userAgent string
	host      Host
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithUserAgent sets the User-Agent header value. Browsers may drop it.
func WithUserAgent(userAgent string) Option {
	return func(a *Adapter) {
		if userAgent != "" {
			a.userAgent = userAgent
		}
	}
}

// WithHost replaces the fetch host.
func WithHost(host Host) Option {
	return func(a *Adapter) {
		if host != nil {
			a.host = host
		}
	}
}

// New creates an adapter using the platform's default host.
func New(auth ghapi.Auth, opts ...Option) *Adapter {
	a := &Adapter{
		auth:      auth,
		userAgent: constants.DefaultUserAgent,
		host:      defaultHost(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Build converts env into a host request carrying the standard and auth
// headers.
func (a *Adapter) Build(env *ghapi.RequestEnvelope) (*Request, error) {
	_, err := url.ParseRequestURI(env.URI)
	if err != nil {
		return nil, newError(ghapi.KindTransport, "build", err)
	}

	req := &Request{
		URL:    env.URI,
		Method: env.Method,
		Header: make(http.Header),
	}

	if env.Body != nil {
		req.Body = NewValue(string(env.Body))
		req.HasBody = true
	}

	internalhttp.ApplyHeaders(req.Header, env, a.auth, a.userAgent)

	return req, nil
}

// Fetch is not implemented by this backend.
func (a *Adapter) Fetch(_ context.Context, _ *Request) (ghapi.Response, error) {
	return nil, unimplemented("fetch")
}

// FetchAsync hands req to the host and returns immediately.
func (a *Adapter) FetchAsync(ctx context.Context, req *Request) *ghapi.Future[ghapi.Response] {
	if a.host == nil {
		return ghapi.Resolved[ghapi.Response](nil, newError(ghapi.KindTransport, "fetch_async", ErrNoHost))
	}

	return ghapi.NewFuture(ctx, func(ctx context.Context) (ghapi.Response, error) {
		resp, err := a.host.Fetch(ctx, req)
		if err != nil {
			return nil, newError(ghapi.KindTransport, "fetch_async", err)
		}

		return &Response{host: resp}, nil
	})
}

// FromJSON encodes model as a host string value.
func (a *Adapter) FromJSON(model any) (Value, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return Value{}, newError(ghapi.KindJSON, "from_json", err)
	}

	return NewValue(string(data)), nil
}
