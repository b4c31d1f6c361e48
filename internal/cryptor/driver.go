package cryptor

// modeDriver is the per-mode state machine. A driver is selected once at
// session construction and never re-dispatched per call.
//
// Process transforms src into dst (equal lengths). Block-aligned drivers
// (ECB, CBC, XTS) are only ever handed whole blocks by the session's
// streaming buffer; stream-equivalent drivers accept any length.
// Reset reinitializes IV/counter/tweak state, retaining the key schedule.
type modeDriver interface {
	Process(dst, src []byte)
	Reset(iv []byte) error
}

// xorBytes sets dst[i] = a[i] ^ b[i] for the shortest of the three slices
// and returns the number of bytes written
func xorBytes(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}
