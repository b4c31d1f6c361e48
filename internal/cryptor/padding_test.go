package cryptor

import (
	"bytes"
	"testing"
)

func TestPKCS7Pad(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{nil, bytes.Repeat([]byte{8}, 8)},
		{[]byte{0xaa}, []byte{0xaa, 7, 7, 7, 7, 7, 7, 7}},
		{[]byte{1, 2, 3, 4, 5, 6, 7}, []byte{1, 2, 3, 4, 5, 6, 7, 1}},
		// aligned input gains a whole padding block
		{bytes.Repeat([]byte{0xbb}, 8), append(bytes.Repeat([]byte{0xbb}, 8), bytes.Repeat([]byte{8}, 8)...)},
	}
	for _, tt := range tests {
		got := pkcs7Pad(tt.in, 8)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("pkcs7Pad(%x) = %x, want %x", tt.in, got, tt.want)
		}
	}
}

func TestPKCS7Unpad(t *testing.T) {
	valid := []struct {
		block []byte
		want  []byte
	}{
		{[]byte{1, 2, 3, 4, 5, 6, 7, 1}, []byte{1, 2, 3, 4, 5, 6, 7}},
		{[]byte{0xaa, 7, 7, 7, 7, 7, 7, 7}, []byte{0xaa}},
		{bytes.Repeat([]byte{8}, 8), []byte{}},
	}
	for _, tt := range valid {
		got, err := pkcs7Unpad(tt.block, 8)
		if err != nil {
			t.Errorf("pkcs7Unpad(%x) failed: %v", tt.block, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("pkcs7Unpad(%x) = %x, want %x", tt.block, got, tt.want)
		}
	}

	invalid := [][]byte{
		{1, 2, 3, 4, 5, 6, 7, 0},            // zero pad byte
		{1, 2, 3, 4, 5, 6, 7, 9},            // pad byte exceeds block
		{1, 2, 3, 4, 5, 6, 6, 7},            // wrong run
		{1, 2, 3, 4, 5, 6, 7},               // short block
		{1, 2, 3, 4, 5, 6, 7, 8, 8},         // long block
		bytes.Repeat([]byte{0xff}, 8),       // garbage
	}
	for _, block := range invalid {
		_, err := pkcs7Unpad(block, 8)
		if StatusOf(err) != StatusDecodeError {
			t.Errorf("pkcs7Unpad(%x): got %v, want decode error", block, err)
		}
	}
}

func TestPKCS7RoundTrip(t *testing.T) {
	for _, bs := range []int{8, 16} {
		for n := 0; n <= 3*bs; n++ {
			in := make([]byte, n)
			for i := range in {
				in[i] = byte(i + 1)
			}
			padded := pkcs7Pad(in, bs)
			if len(padded)%bs != 0 || len(padded) <= n {
				t.Fatalf("bs=%d n=%d: padded length %d", bs, n, len(padded))
			}
			got, err := pkcs7Unpad(padded[len(padded)-bs:], bs)
			if err != nil {
				t.Fatalf("bs=%d n=%d: unpad failed: %v", bs, n, err)
			}
			if want := in[n-n%bs:]; !bytes.Equal(got, want) {
				t.Errorf("bs=%d n=%d: tail = %x, want %x", bs, n, got, want)
			}
		}
	}
}
