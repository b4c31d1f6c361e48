package cryptor

import "crypto/cipher"

// cfb8Driver implements byte-granular cipher feedback. A full keystream
// block is generated per input byte but only its leading byte is used; the
// shift register then takes the ciphertext byte at its tail. Slow, but
// matches the CFB8 wire format.
type cfb8Driver struct {
	block     cipher.Block
	blockSize int
	decrypt   bool
	shift     []byte // shift register
	tmp       []byte
}

func newCFB8(block cipher.Block, op Operation, iv []byte) *cfb8Driver {
	bs := block.BlockSize()
	d := &cfb8Driver{
		block:     block,
		blockSize: bs,
		decrypt:   op == Decrypt,
		shift:     make([]byte, bs),
		tmp:       make([]byte, bs),
	}
	copy(d.shift, iv)
	return d
}

func (d *cfb8Driver) Process(dst, src []byte) {
	bs := d.blockSize
	for i := 0; i < len(src); i++ {
		d.block.Encrypt(d.tmp, d.shift)
		in := src[i]
		out := in ^ d.tmp[0]
		feedback := out
		if d.decrypt {
			feedback = in
		}
		copy(d.shift, d.shift[1:])
		d.shift[bs-1] = feedback
		dst[i] = out
	}
}

func (d *cfb8Driver) Reset(iv []byte) error {
	if len(iv) != d.blockSize {
		return NewParamError("CFB8 IV must be %d bytes, got %d", d.blockSize, len(iv))
	}
	copy(d.shift, iv)
	return nil
}
