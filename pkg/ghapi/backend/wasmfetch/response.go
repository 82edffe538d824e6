package wasmfetch

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// Response is the view of a host response. Decode it with ToJSONAsync.
type Response struct {
	host HostResponse

	mu       sync.Mutex
	consumed bool
}

// IsSuccess reports whether the status is 2xx.
func (r *Response) IsSuccess() bool { return ghapi.IsSuccessStatus(r.host.Status()) }

// StatusCode returns the HTTP status.
func (r *Response) StatusCode() int { return r.host.Status() }

// Header returns the named header, or "".
func (r *Response) Header(name string) string { return r.host.Header(name) }

// Close marks the body consumed. The host releases it when collected.
func (r *Response) Close() error {
	r.take()

	return nil
}

// ToJSON is not implemented by this backend.
func (r *Response) ToJSON(_ any) error {
	return unimplemented("to_json")
}

// ToJSONAsync awaits the body text and decodes it into v. It succeeds at
// most once.
func (r *Response) ToJSONAsync(ctx context.Context, v any) error {
	if !r.take() {
		return newError(ghapi.KindIO, "to_json_async", ghapi.ErrBodyConsumed)
	}

	text, err := r.host.Text(ctx)
	if err != nil {
		return newError(ghapi.KindIO, "to_json_async", err)
	}

	err = json.Unmarshal([]byte(text), v)
	if err != nil {
		return newError(ghapi.KindJSON, "to_json_async", err)
	}

	return nil
}

// take reports whether this call consumed the body.
func (r *Response) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.consumed {
		return false
	}

	r.consumed = true

	return true
}
