// Package resty is a blocking backend built on go-resty.
package resty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	restyv2 "github.com/go-resty/resty/v2"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

var _ ghapi.Adapter[*restyv2.Request, []byte] = (*Adapter)(nil)

// Adapter sends requests synchronously. Its FetchAsync is not implemented.
type Adapter struct {
	auth      ghapi.Auth
	userAgent string
	client    *restyv2.Client
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

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Adapter) {
		a.client.SetTimeout(timeout)
	}
}

// WithRetry retries requests that fail before a response is received.
// Retries are off unless this option is given.
func WithRetry(count int, waitMin, waitMax time.Duration) Option {
	return func(a *Adapter) {
		a.client.SetRetryCount(count).
			SetRetryWaitTime(waitMin).
			SetRetryMaxWaitTime(waitMax)
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(a *Adapter) {
		if transport != nil {
			a.client.SetTransport(transport)
		}
	}
}

// WithLogger routes resty's own logging to logger.
func WithLogger(logger ghapi.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.client.SetLogger(restyLogger{logger: logger})
		}
	}
}

// New creates an adapter backed by a single resty client.
func New(auth ghapi.Auth, opts ...Option) *Adapter {
	client := restyv2.New().
		SetTimeout(constants.DefaultHTTPTimeout).
		SetRetryCount(0).
		SetDoNotParseResponse(true)

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

// Build converts env into a resty request carrying the standard and auth
// headers.
func (a *Adapter) Build(env *ghapi.RequestEnvelope) (*restyv2.Request, error) {
	_, err := url.Parse(env.URI)
	if err != nil {
		return nil, newError(ghapi.KindTransport, "build", err)
	}

	req := a.client.R()
	req.Method = env.Method
	req.URL = env.URI

	if env.Body != nil {
		req.SetBody(env.Body)
	}

	internalhttp.ApplyHeaders(req.Header, env, a.auth, a.userAgent)

	return req, nil
}

// Fetch sends req and blocks until the response headers arrive. The body is
// left unread until ToJSON.
func (a *Adapter) Fetch(ctx context.Context, req *restyv2.Request) (ghapi.Response, error) {
	resp, err := req.SetContext(ctx).Send()
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			_ = resp.RawBody().Close()
		}

		return nil, newError(ghapi.KindTransport, "fetch", err)
	}

	return &Response{
		Response: internalhttp.NewResponseParts(resp.StatusCode(), resp.Header(), resp.RawBody()),
	}, nil
}

// FetchAsync is not implemented by this backend.
func (a *Adapter) FetchAsync(_ context.Context, _ *restyv2.Request) *ghapi.Future[ghapi.Response] {
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

// restyLogger satisfies restyv2.Logger.
type restyLogger struct {
	logger ghapi.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), nil)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), nil)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), nil)
}
