package cryptor

import "crypto/cipher"

// xtsDriver implements XEX-style tweaked encryption over 16-byte blocks.
// The caller-supplied sector tweak is whitened through the key schedule
// (T0 = E_K(tweak)); each subsequent block multiplies the tweak by alpha
// in GF(2^128) using the x^128 + x^7 + x^2 + x + 1 polynomial, the same
// tweak schedule IEEE 1619 XTS uses. Ciphertext stealing is not
// implemented, so input must stay block aligned.
type xtsDriver struct {
	block   cipher.Block
	decrypt bool
	tweak   []byte // running per-block tweak
	tmp     []byte
}

func newXTS(block cipher.Block, op Operation, tweak []byte) *xtsDriver {
	d := &xtsDriver{
		block:   block,
		decrypt: op == Decrypt,
		tweak:   make([]byte, BlockSizeAES),
		tmp:     make([]byte, BlockSizeAES),
	}
	d.setTweak(tweak)
	return d
}

func (d *xtsDriver) setTweak(tweak []byte) {
	d.block.Encrypt(d.tweak, tweak)
}

// mul2 multiplies the tweak by alpha in GF(2^128), treating the tweak as a
// little-endian polynomial
func (d *xtsDriver) mul2() {
	var carry byte
	for i := range d.tweak {
		next := d.tweak[i] >> 7
		d.tweak[i] = d.tweak[i]<<1 | carry
		carry = next
	}
	if carry != 0 {
		d.tweak[0] ^= 0x87
	}
}

func (d *xtsDriver) Process(dst, src []byte) {
	bs := BlockSizeAES
	for len(src) > 0 {
		xorBytes(d.tmp, src[:bs], d.tweak)
		if d.decrypt {
			d.block.Decrypt(d.tmp, d.tmp)
		} else {
			d.block.Encrypt(d.tmp, d.tmp)
		}
		xorBytes(dst[:bs], d.tmp, d.tweak)
		d.mul2()
		src = src[bs:]
		dst = dst[bs:]
	}
}

func (d *xtsDriver) Reset(tweak []byte) error {
	if len(tweak) != BlockSizeAES {
		return NewParamError("XTS tweak must be %d bytes, got %d", BlockSizeAES, len(tweak))
	}
	d.setTweak(tweak)
	return nil
}
