package cryptor

import (
	"bytes"
	"testing"
)

// FuzzRoundTrip checks encrypt-then-decrypt is the identity for arbitrary
// payloads and chunkings across the padded CBC path.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("seed payload"), uint8(4))
	f.Add([]byte{}, uint8(1))
	f.Add(bytes.Repeat([]byte{0xff}, 100), uint8(16))

	key := bytes.Repeat([]byte{0x5c}, KeySizeAES128)
	iv := bytes.Repeat([]byte{0x36}, BlockSizeAES)

	f.Fuzz(func(t *testing.T, data []byte, chunk uint8) {
		if chunk == 0 {
			chunk = 1
		}

		enc, err := New(Config{
			Operation: Encrypt, Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv,
		})
		if err != nil {
			t.Fatalf("New encrypt failed: %v", err)
		}
		defer enc.Close()

		var ct []byte
		for i := 0; i < len(data); i += int(chunk) {
			end := i + int(chunk)
			if end > len(data) {
				end = len(data)
			}
			out, err := enc.Update(data[i:end])
			if err != nil {
				t.Fatalf("Update failed: %v", err)
			}
			ct = append(ct, out...)
		}
		tail, err := enc.Final()
		if err != nil {
			t.Fatalf("Final failed: %v", err)
		}
		ct = append(ct, tail...)

		dec, err := New(Config{
			Operation: Decrypt, Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv,
		})
		if err != nil {
			t.Fatalf("New decrypt failed: %v", err)
		}
		defer dec.Close()

		pt, err := dec.Update(ct)
		if err != nil {
			t.Fatalf("decrypt Update failed: %v", err)
		}
		tail, err = dec.Final()
		if err != nil {
			t.Fatalf("decrypt Final failed: %v", err)
		}
		pt = append(pt, tail...)

		if !bytes.Equal(pt, data) {
			t.Errorf("round trip mismatch: in %d bytes, out %d bytes", len(data), len(pt))
		}
	})
}

// FuzzUnpad ensures padding validation never panics and never accepts a
// block whose re-padding would not reproduce it.
func FuzzUnpad(f *testing.F) {
	f.Add(bytes.Repeat([]byte{16}, 16))
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 1})

	f.Fuzz(func(t *testing.T, block []byte) {
		payload, err := pkcs7Unpad(block, 16)
		if err != nil {
			return
		}
		if repadded := pkcs7Pad(payload, 16); !bytes.Equal(repadded, block) {
			t.Errorf("accepted padding %x but re-pad gives %x", block, repadded)
		}
	})
}
