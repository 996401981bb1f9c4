package crypto

import "runtime"

// Wipe zeroes b in place. Best-effort: it shortens the lifetime of derived
// keys in memory but cannot reach copies the runtime may have made.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
