//go:build !(js && wasm)

package wasmfetch

// Value stands in for a host string value outside js/wasm.
type Value struct {
	s string
}

// NewValue wraps s.
func NewValue(s string) Value {
	return Value{s: s}
}

// String returns the wrapped string.
func (v Value) String() string {
	return v.s
}
