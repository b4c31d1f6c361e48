package cryptor

import "crypto/cipher"

// ecbDriver applies the key schedule block by block with no chaining
type ecbDriver struct {
	block     cipher.Block
	blockSize int
	decrypt   bool
}

func newECB(block cipher.Block, op Operation) *ecbDriver {
	return &ecbDriver{
		block:     block,
		blockSize: block.BlockSize(),
		decrypt:   op == Decrypt,
	}
}

func (d *ecbDriver) Process(dst, src []byte) {
	for len(src) > 0 {
		if d.decrypt {
			d.block.Decrypt(dst, src)
		} else {
			d.block.Encrypt(dst, src)
		}
		src = src[d.blockSize:]
		dst = dst[d.blockSize:]
	}
}

// Reset is a no-op; ECB carries no chaining state
func (d *ecbDriver) Reset(iv []byte) error {
	return nil
}
