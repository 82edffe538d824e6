package retryable

import (
	"context"

	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
)

// Response is the view of a completed exchange. Decode it with ToJSON.
type Response struct {
	internalhttp.Response
}

// ToJSON reads and decodes the body into v. It succeeds at most once.
func (r *Response) ToJSON(v any) error {
	kind, err := r.Body.Decode(v)
	if err != nil {
		return newError(kind, "to_json", err)
	}

	return nil
}

// ToJSONAsync is not implemented by this backend.
func (r *Response) ToJSONAsync(_ context.Context, _ any) error {
	return unimplemented("to_json_async")
}
