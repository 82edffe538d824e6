package ghapi

import (
	"context"
)

// ErrorDecoder turns a failed response into the error an endpoint declares
// for its status code.
type ErrorDecoder func(ctx context.Context, caller Caller, resp Response) error

// ErrorMap lists the failure statuses an endpoint declares. Statuses absent
// from the map produce a *GenericError.
type ErrorMap map[int]ErrorDecoder

// Expect declares that a status carries a JSON body of type T. The resulting
// error is a *StatusError[T].
func Expect[T any]() ErrorDecoder {
	return func(ctx context.Context, caller Caller, resp Response) error {
		var body T

		err := caller.Decode(ctx, resp, &body)
		if err != nil {
			return err
		}

		return &StatusError[T]{Code: resp.StatusCode(), Body: body}
	}
}

// Meta is response metadata endpoints may surface next to the decoded body.
type Meta struct {
	StatusCode int
	RateLimit  *RateLimitSnapshot
}

// Invoke sends env through caller and decodes a 2xx body into T. Failure
// statuses are decoded with errs.
func Invoke[T any](ctx context.Context, caller Caller, env *RequestEnvelope, errs ErrorMap) (T, error) {
	out, _, err := InvokeMeta[T](ctx, caller, env, errs)

	return out, err
}

// InvokeMeta is Invoke that also returns the response metadata. Meta is
// populated whenever a response was received, including failures.
func InvokeMeta[T any](ctx context.Context, caller Caller, env *RequestEnvelope, errs ErrorMap) (T, Meta, error) {
	var out T

	if caller == nil {
		return out, Meta{}, ErrCallerRequired
	}

	resp, err := caller.Call(ctx, env)
	if err != nil {
		return out, Meta{}, err
	}

	meta := Meta{StatusCode: resp.StatusCode()}
	if snap, ok := ParseRateLimit(resp); ok {
		meta.RateLimit = &snap
	}

	if !resp.IsSuccess() {
		return out, meta, decodeFailure(ctx, caller, resp, errs)
	}

	err = caller.Decode(ctx, resp, &out)
	if err != nil {
		var zero T

		return zero, meta, err
	}

	return out, meta, nil
}

func decodeFailure(ctx context.Context, caller Caller, resp Response, errs ErrorMap) error {
	decode, ok := errs[resp.StatusCode()]
	if !ok || decode == nil {
		_ = resp.Close()

		return &GenericError{Code: resp.StatusCode()}
	}

	return decode(ctx, caller, resp)
}
