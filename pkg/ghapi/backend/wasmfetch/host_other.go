//go:build !(js && wasm)

package wasmfetch

func defaultHost() Host { return nil }
