package cryptor

import "crypto/cipher"

// ctrDriver XORs data with the encryption of a monotonically incrementing
// counter. The counter is the IV interpreted as an integer in the
// configured byte order; overflow wraps within the block width.
// See NIST SP 800-38A, pp 13-15.
type ctrDriver struct {
	block     cipher.Block
	blockSize int
	little    bool
	ctr       []byte
	out       []byte // current keystream block
	outUsed   int
}

func newCTR(block cipher.Block, iv []byte, order CounterOrder) *ctrDriver {
	bs := block.BlockSize()
	d := &ctrDriver{
		block:     block,
		blockSize: bs,
		little:    order == LittleEndian,
		ctr:       make([]byte, bs),
		out:       make([]byte, bs),
		outUsed:   bs,
	}
	copy(d.ctr, iv)
	return d
}

func (d *ctrDriver) increment() {
	if d.little {
		for i := 0; i < len(d.ctr); i++ {
			d.ctr[i]++
			if d.ctr[i] != 0 {
				break
			}
		}
		return
	}
	for i := len(d.ctr) - 1; i >= 0; i-- {
		d.ctr[i]++
		if d.ctr[i] != 0 {
			break
		}
	}
}

func (d *ctrDriver) Process(dst, src []byte) {
	for len(src) > 0 {
		if d.outUsed == d.blockSize {
			d.block.Encrypt(d.out, d.ctr)
			d.increment()
			d.outUsed = 0
		}
		n := xorBytes(dst, src, d.out[d.outUsed:])
		d.outUsed += n
		dst = dst[n:]
		src = src[n:]
	}
}

func (d *ctrDriver) Reset(iv []byte) error {
	if len(iv) != d.blockSize {
		return NewParamError("CTR counter must be %d bytes, got %d", d.blockSize, len(iv))
	}
	copy(d.ctr, iv)
	d.outUsed = d.blockSize
	return nil
}
