package cryptor

import "crypto/cipher"

// cfbDriver implements full-block cipher feedback. The block cipher always
// runs in the encrypt direction; the previous ciphertext block feeds the
// next keystream block. Partial trailing blocks are legal.
type cfbDriver struct {
	block     cipher.Block
	blockSize int
	decrypt   bool
	next      []byte // feedback register
	out       []byte // current keystream block
	outUsed   int
}

func newCFB(block cipher.Block, op Operation, iv []byte) *cfbDriver {
	bs := block.BlockSize()
	d := &cfbDriver{
		block:     block,
		blockSize: bs,
		decrypt:   op == Decrypt,
		next:      make([]byte, bs),
		out:       make([]byte, bs),
		outUsed:   bs,
	}
	copy(d.next, iv)
	return d
}

func (d *cfbDriver) Process(dst, src []byte) {
	for len(src) > 0 {
		if d.outUsed == d.blockSize {
			d.block.Encrypt(d.out, d.next)
			d.outUsed = 0
		}
		if d.decrypt {
			// Feed ciphertext into the register before it is overwritten
			// in case src aliases dst.
			n := copy(d.next[d.outUsed:], src)
			xorBytes(dst, src[:n], d.out[d.outUsed:])
			d.outUsed += n
			dst = dst[n:]
			src = src[n:]
			continue
		}
		n := xorBytes(dst, src, d.out[d.outUsed:])
		copy(d.next[d.outUsed:], dst[:n])
		d.outUsed += n
		dst = dst[n:]
		src = src[n:]
	}
}

func (d *cfbDriver) Reset(iv []byte) error {
	if len(iv) != d.blockSize {
		return NewParamError("CFB IV must be %d bytes, got %d", d.blockSize, len(iv))
	}
	copy(d.next, iv)
	d.outUsed = d.blockSize
	return nil
}
