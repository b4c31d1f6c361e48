package rc2

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestRC2Vectors checks the RFC 2268 section 5 test vectors
func TestRC2Vectors(t *testing.T) {
	tests := []struct {
		key       string
		effective int
		plain     string
		cipher    string
	}{
		{"0000000000000000", 63, "0000000000000000", "ebb773f993278eff"},
		{"ffffffffffffffff", 64, "ffffffffffffffff", "278b27e42e2f0d49"},
		{"3000000000000000", 64, "1000000000000001", "30649edf9be7d2c2"},
		{"88", 64, "0000000000000000", "61a8a244adacccf0"},
		{"88bca90e90875a", 64, "0000000000000000", "6ccf4308974c267f"},
		{"88bca90e90875a7f0f79c384627bafb2", 64, "0000000000000000", "1a807d272bbe5db1"},
		{"88bca90e90875a7f0f79c384627bafb2", 128, "0000000000000000", "2269552ab0f85ca6"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key, _ := hex.DecodeString(tt.key)
			plain, _ := hex.DecodeString(tt.plain)
			want, _ := hex.DecodeString(tt.cipher)

			c, err := New(key, tt.effective)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			got := make([]byte, BlockSize)
			c.Encrypt(got, plain)
			if !bytes.Equal(got, want) {
				t.Errorf("Encrypt = %x, want %x", got, want)
			}

			back := make([]byte, BlockSize)
			c.Decrypt(back, got)
			if !bytes.Equal(back, plain) {
				t.Errorf("Decrypt = %x, want %x", back, plain)
			}
		})
	}
}

// TestRC2KeySize checks key and effective-bits validation
func TestRC2KeySize(t *testing.T) {
	if _, err := New(nil, 64); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := New(make([]byte, 129), 64); err == nil {
		t.Error("expected error for oversized key")
	}
	if _, err := New(make([]byte, 16), 0); err == nil {
		t.Error("expected error for zero effective bits")
	}
	if _, err := New(make([]byte, 16), 2048); err == nil {
		t.Error("expected error for oversized effective bits")
	}
}
