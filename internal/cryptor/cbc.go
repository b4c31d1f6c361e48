package cryptor

import "crypto/cipher"

// cbcDriver chains each block through the previous ciphertext block.
// See NIST SP 800-38A, pp 10-11.
type cbcDriver struct {
	block     cipher.Block
	blockSize int
	decrypt   bool
	chain     []byte // previous ciphertext block (IV initially)
	tmp       []byte
}

func newCBC(block cipher.Block, op Operation, iv []byte) *cbcDriver {
	d := &cbcDriver{
		block:     block,
		blockSize: block.BlockSize(),
		decrypt:   op == Decrypt,
		chain:     make([]byte, block.BlockSize()),
		tmp:       make([]byte, block.BlockSize()),
	}
	copy(d.chain, iv)
	return d
}

func (d *cbcDriver) Process(dst, src []byte) {
	bs := d.blockSize
	if d.decrypt {
		for len(src) > 0 {
			// src and dst may alias, so save the ciphertext block first
			copy(d.tmp, src[:bs])
			d.block.Decrypt(dst[:bs], src[:bs])
			xorBytes(dst[:bs], dst[:bs], d.chain)
			d.chain, d.tmp = d.tmp, d.chain
			src = src[bs:]
			dst = dst[bs:]
		}
		return
	}
	for len(src) > 0 {
		xorBytes(d.tmp, src[:bs], d.chain)
		d.block.Encrypt(dst[:bs], d.tmp)
		copy(d.chain, dst[:bs])
		src = src[bs:]
		dst = dst[bs:]
	}
}

func (d *cbcDriver) Reset(iv []byte) error {
	if len(iv) != d.blockSize {
		return NewParamError("CBC IV must be %d bytes, got %d", d.blockSize, len(iv))
	}
	copy(d.chain, iv)
	return nil
}
