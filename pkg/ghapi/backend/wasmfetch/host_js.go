//go:build js && wasm

package wasmfetch

import (
	"context"
	"fmt"
	"syscall/js"
)

func defaultHost() Host { return browserHost{} }

// browserHost calls the global fetch function.
type browserHost struct{}

func (browserHost) Fetch(ctx context.Context, req *Request) (HostResponse, error) {
	global := js.Global()

	var controller js.Value
	if ctor := global.Get("AbortController"); ctor.Truthy() {
		controller = ctor.New()
	}

	headers := global.Get("Headers").New()
	for name, values := range req.Header {
		for _, value := range values {
			headers.Call("append", name, value)
		}
	}

	init := global.Get("Object").New()
	init.Set("method", req.Method)
	init.Set("headers", headers)

	if req.HasBody {
		init.Set("body", req.Body)
	}

	if controller.Truthy() {
		init.Set("signal", controller.Get("signal"))
	}

	resp, err := await(ctx, global.Call("fetch", req.URL, init), controller)
	if err != nil {
		return nil, err
	}

	return &browserResponse{value: resp, controller: controller}, nil
}

type browserResponse struct {
	value      js.Value
	controller js.Value
}

func (r *browserResponse) Status() int {
	return r.value.Get("status").Int()
}

func (r *browserResponse) Header(name string) string {
	v := r.value.Get("headers").Call("get", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}

	return v.String()
}

func (r *browserResponse) Text(ctx context.Context) (string, error) {
	v, err := await(ctx, r.value.Call("text"), r.controller)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

type settled struct {
	value js.Value
	err   error
}

// await blocks the calling goroutine until promise settles. When ctx ends
// first the request is aborted and the rejection is drained before the
// callbacks are released. Without an AbortController the callbacks are left
// for the garbage collector.
func await(ctx context.Context, promise js.Value, controller js.Value) (js.Value, error) {
	ch := make(chan settled, 1)

	onResolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ch <- settled{value: args[0]}

		return nil
	})

	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ch <- settled{err: fmt.Errorf("%w: %s", ErrHostRejected, args[0].Call("toString").String())}

		return nil
	})

	release := func() {
		onResolve.Release()
		onReject.Release()
	}

	promise.Call("then", onResolve, onReject)

	select {
	case res := <-ch:
		release()

		return res.value, res.err
	case <-ctx.Done():
		if controller.Truthy() {
			controller.Call("abort")
			<-ch
			release()
		}

		return js.Undefined(), ctx.Err()
	}
}
