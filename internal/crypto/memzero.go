package crypto

import "runtime"

// Wipe zeroes secret material once it has been persisted or printed.
// Best-effort: earlier copies made by the runtime are out of reach.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(b)
}
