package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// Body hands out a response body exactly once.
type Body struct {
	mu       sync.Mutex
	rc       io.ReadCloser
	consumed bool
}

// NewBody wraps rc. A nil rc behaves as an empty body.
func NewBody(rc io.ReadCloser) *Body {
	if rc == nil {
		rc = http.NoBody
	}

	return &Body{rc: rc}
}

// Take returns the body for reading. The caller must close it. Every call
// after the first returns ghapi.ErrBodyConsumed.
func (b *Body) Take() (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumed {
		return nil, ghapi.ErrBodyConsumed
	}

	b.consumed = true

	return b.rc, nil
}

// Close discards the body if it was never taken.
func (b *Body) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumed {
		return nil
	}

	b.consumed = true

	return b.rc.Close()
}

// Decode reads the whole body and unmarshals it into v. The returned kind
// tells an I/O failure from a JSON failure.
func (b *Body) Decode(v any) (ghapi.BackendErrorKind, error) {
	rc, err := b.Take()
	if err != nil {
		return ghapi.KindIO, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return ghapi.KindIO, err
	}

	err = json.Unmarshal(data, v)
	if err != nil {
		return ghapi.KindJSON, err
	}

	return ghapi.KindJSON, nil
}

// Response carries the parts of an *http.Response every network backend's
// view shares. Backends embed it and add the decode methods they support.
type Response struct {
	status int
	header http.Header
	Body   *Body
}

// NewResponse wraps resp. The body is owned by the returned value.
func NewResponse(resp *http.Response) Response {
	return Response{status: resp.StatusCode, header: resp.Header, Body: NewBody(resp.Body)}
}

// NewResponseParts builds a Response from an already split response.
func NewResponseParts(status int, header http.Header, body io.ReadCloser) Response {
	return Response{status: status, header: header, Body: NewBody(body)}
}

// IsSuccess reports whether the status is 2xx.
func (r *Response) IsSuccess() bool { return ghapi.IsSuccessStatus(r.status) }

// StatusCode returns the HTTP status.
func (r *Response) StatusCode() int { return r.status }

// Header returns the first value of the named header.
func (r *Response) Header(name string) string { return r.header.Get(name) }

// Close releases the body.
func (r *Response) Close() error { return r.Body.Close() }
