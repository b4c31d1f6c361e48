package cryptor

import "crypto/cipher"

// ofbDriver generates a keystream by repeatedly encrypting the IV and XORs
// it with the data; the keystream is independent of plaintext and
// ciphertext. Encrypt and decrypt are identical.
type ofbDriver struct {
	block     cipher.Block
	blockSize int
	feedback  []byte // running keystream block
	outUsed   int
}

func newOFB(block cipher.Block, iv []byte) *ofbDriver {
	bs := block.BlockSize()
	d := &ofbDriver{
		block:     block,
		blockSize: bs,
		feedback:  make([]byte, bs),
		outUsed:   bs,
	}
	copy(d.feedback, iv)
	return d
}

func (d *ofbDriver) Process(dst, src []byte) {
	for len(src) > 0 {
		if d.outUsed == d.blockSize {
			d.block.Encrypt(d.feedback, d.feedback)
			d.outUsed = 0
		}
		n := xorBytes(dst, src, d.feedback[d.outUsed:])
		d.outUsed += n
		dst = dst[n:]
		src = src[n:]
	}
}

func (d *ofbDriver) Reset(iv []byte) error {
	if len(iv) != d.blockSize {
		return NewParamError("OFB IV must be %d bytes, got %d", d.blockSize, len(iv))
	}
	copy(d.feedback, iv)
	d.outUsed = d.blockSize
	return nil
}
