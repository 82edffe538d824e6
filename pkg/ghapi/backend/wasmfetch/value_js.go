//go:build js && wasm

package wasmfetch

import "syscall/js"

// Value is a JavaScript value used as a request body.
type Value = js.Value

// NewValue returns s as a JavaScript string.
func NewValue(s string) Value {
	return js.ValueOf(s)
}
