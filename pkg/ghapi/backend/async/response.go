package async

import (
	"context"
	"encoding/json"
	"io"

	internalhttp "github.com/fivetwenty-io/ghapi-client/internal/http"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// Response is the view of a completed exchange. Decode it with ToJSONAsync.
type Response struct {
	internalhttp.Response
}

// ToJSON is not implemented by this backend.
func (r *Response) ToJSON(_ any) error {
	return unimplemented("to_json")
}

type decodeResult struct {
	kind ghapi.BackendErrorKind
	err  error
}

// ToJSONAsync reads and decodes the body into v, giving up when ctx ends.
// It succeeds at most once.
func (r *Response) ToJSONAsync(ctx context.Context, v any) error {
	rc, err := r.Body.Take()
	if err != nil {
		return newError(ghapi.KindIO, "to_json_async", err)
	}

	done := make(chan decodeResult, 1)

	go func() {
		data, err := io.ReadAll(rc)
		if err != nil {
			done <- decodeResult{kind: ghapi.KindIO, err: err}

			return
		}

		done <- decodeResult{kind: ghapi.KindJSON, err: json.Unmarshal(data, v)}
	}()

	var res decodeResult

	select {
	case res = <-done:
		_ = rc.Close()
	case <-ctx.Done():
		// Closing unblocks the reader; wait so v is not written after return.
		_ = rc.Close()
		<-done

		res = decodeResult{kind: ghapi.KindIO, err: ctx.Err()}
	}

	if res.err != nil {
		return newError(res.kind, "to_json_async", res.err)
	}

	return nil
}
