package ghapi

import (
	"context"
)

// Adapter is the capability every backend provides. R is the backend's native
// request type and B the body representation it sends.
//
// Build must apply the envelope's headers, then the standard headers, then
// the Authorization header dictated by the adapter's Auth. A backend
// implements exactly one of Fetch and FetchAsync; the other reports an error
// matching ErrUnimplemented.
type Adapter[R, B any] interface {
	Build(env *RequestEnvelope) (R, error)
	Fetch(ctx context.Context, req R) (Response, error)
	FetchAsync(ctx context.Context, req R) *Future[Response]
	FromJSON(model any) (B, error)
}

// Future is the eventual result of an asynchronous operation.
type Future[T any] struct {
	done   chan struct{}
	value  T
	err    error
	cancel context.CancelFunc
}

// NewFuture starts fn on its own goroutine and returns immediately. The
// context handed to fn is cancelled by Cancel or by abandoning Await.
//
// If fn succeeds after its context was cancelled, nobody is left to consume
// the value: it is closed when it has a Close method and the future resolves
// with the context's error instead.
func NewFuture[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	runCtx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer close(f.done)

		value, err := fn(runCtx)
		if err == nil && runCtx.Err() != nil {
			release(value)

			var zero T

			value, err = zero, runCtx.Err()
		}

		f.value, f.err = value, err
		if err != nil {
			cancel()
		}
	}()

	return f
}

// release closes an orphaned result.
func release(value any) {
	closer, ok := value.(interface{ Close() error })
	if ok {
		_ = closer.Close()
	}
}

// Resolved returns a future that has already completed.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err, cancel: func() {}}
	close(f.done)

	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await suspends until the result is available or ctx ends. Abandoning the
// wait through ctx cancels the underlying operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
	}

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		f.cancel()

		var zero T

		return zero, ctx.Err()
	}
}

// Cancel aborts the operation if it is still running.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// Caller is what endpoint code talks to. It hides the backend's request and
// body types and whether the backend is blocking or asynchronous.
type Caller interface {
	// Call builds and sends env. Any backend failure is an *AdapterError.
	Call(ctx context.Context, env *RequestEnvelope) (Response, error)
	// Decode consumes resp's body into v using the flavour the backend supports.
	Decode(ctx context.Context, resp Response, v any) error
}

// Blocking returns a Caller that drives adapter through Fetch and ToJSON.
func Blocking[R, B any](adapter Adapter[R, B], opts ...CallerOption) Caller {
	return &blockingCaller[R, B]{adapter: adapter, callerCore: newCallerCore(opts)}
}

// Async returns a Caller that drives adapter through FetchAsync and ToJSONAsync.
func Async[R, B any](adapter Adapter[R, B], opts ...CallerOption) Caller {
	return &asyncCaller[R, B]{adapter: adapter, callerCore: newCallerCore(opts)}
}

type blockingCaller[R, B any] struct {
	callerCore

	adapter Adapter[R, B]
}

func (c *blockingCaller[R, B]) Call(ctx context.Context, env *RequestEnvelope) (Response, error) {
	return c.call(ctx, env, func(ctx context.Context, env *RequestEnvelope) (Response, error) {
		req, err := c.adapter.Build(env)
		if err != nil {
			return nil, err
		}

		return c.adapter.Fetch(ctx, req)
	})
}

func (c *blockingCaller[R, B]) Decode(_ context.Context, resp Response, v any) error {
	if resp == nil {
		return ToAdapterError(ErrNilResponse)
	}

	return asAdapterError(resp.ToJSON(v))
}

type asyncCaller[R, B any] struct {
	callerCore

	adapter Adapter[R, B]
}

func (c *asyncCaller[R, B]) Call(ctx context.Context, env *RequestEnvelope) (Response, error) {
	return c.call(ctx, env, func(ctx context.Context, env *RequestEnvelope) (Response, error) {
		req, err := c.adapter.Build(env)
		if err != nil {
			return nil, err
		}

		return c.adapter.FetchAsync(ctx, req).Await(ctx)
	})
}

func (c *asyncCaller[R, B]) Decode(ctx context.Context, resp Response, v any) error {
	if resp == nil {
		return ToAdapterError(ErrNilResponse)
	}

	return asAdapterError(resp.ToJSONAsync(ctx, v))
}
