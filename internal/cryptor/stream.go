package cryptor

import "crypto/rc4"

// rc4Driver passes data through the RC4 keystream. No block alignment, no
// IV, no padding ever applies. Reset rebuilds the keystream state from the
// retained key so a session can be reused.
type rc4Driver struct {
	key    []byte
	stream *rc4.Cipher
}

func newRC4(key []byte) (*rc4Driver, error) {
	stream, err := rc4.NewCipher(key)
	if err != nil {
		return nil, NewParamError("RC4 key rejected: %v", err)
	}
	d := &rc4Driver{
		key:    make([]byte, len(key)),
		stream: stream,
	}
	copy(d.key, key)
	return d, nil
}

func (d *rc4Driver) Process(dst, src []byte) {
	d.stream.XORKeyStream(dst, src)
}

// Reset restarts the keystream from the beginning; iv is ignored
func (d *rc4Driver) Reset(iv []byte) error {
	stream, err := rc4.NewCipher(d.key)
	if err != nil {
		return NewParamError("RC4 key rejected: %v", err)
	}
	d.stream = stream
	return nil
}

// wipe zeroes the retained key copy
func (d *rc4Driver) wipe() {
	for i := range d.key {
		d.key[i] = 0
	}
}
