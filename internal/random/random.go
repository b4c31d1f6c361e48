// Package random wraps the platform CSPRNG with length validation and a
// stable error surface for callers that need status-mapped failures.
package random

import (
	"crypto/rand"

	"github.com/cryptor-go/internal/cryptor"
)

// MaxBytes caps a single request; anything a caller legitimately needs
// (keys, IVs, tweaks, nonces) is far below this.
const MaxBytes = 1 << 20

// Bytes returns n cryptographically random bytes.
func Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, cryptor.NewParamError("negative random byte count %d", n)
	}
	if n > MaxBytes {
		return nil, cryptor.NewParamError("random byte count %d exceeds limit %d", n, MaxBytes)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, cryptor.NewRNGFailure("system random source failed: %v", err)
	}
	return buf, nil
}

// Fill overwrites buf with cryptographically random bytes.
func Fill(buf []byte) error {
	if len(buf) > MaxBytes {
		return cryptor.NewParamError("random byte count %d exceeds limit %d", len(buf), MaxBytes)
	}
	if _, err := rand.Read(buf); err != nil {
		return cryptor.NewRNGFailure("system random source failed: %v", err)
	}
	return nil
}
