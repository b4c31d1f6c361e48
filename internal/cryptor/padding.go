package cryptor

import "crypto/subtle"

// pkcs7Pad appends PKCS#7 padding to data, returning a block-aligned
// result. A block-aligned input gains a full extra block of padding; that
// is the PKCS#7 contract, not an edge case to skip.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad validates and strips PKCS#7 padding from the final block.
// All padding bytes are checked with a constant-time comparison so the
// error does not reveal which byte mismatched.
func pkcs7Unpad(block []byte, blockSize int) ([]byte, error) {
	if len(block) != blockSize {
		return nil, NewDecodeError("padding block has wrong length")
	}
	n := int(block[blockSize-1])
	if n < 1 || n > blockSize {
		return nil, NewDecodeError("invalid padding")
	}
	bad := 0
	for i := blockSize - n; i < blockSize; i++ {
		bad |= subtle.ConstantTimeByteEq(block[i], byte(n)) ^ 1
	}
	if bad != 0 {
		return nil, NewDecodeError("invalid padding")
	}
	return block[:blockSize-n], nil
}
