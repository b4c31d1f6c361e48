// Package cryptor implements a mode-agnostic streaming symmetric cipher
// engine: block modes (ECB, CBC, XTS), stream-equivalent modes (CFB, CFB8,
// OFB, CTR) and RC4 passthrough behind one incremental update/final API
// with PKCS#7 padding where it is semantically valid.
package cryptor

import "math"

// Config describes a cryptor session. Key is required; IV, Tweak, Rounds
// and CounterOrder are mode- and algorithm-dependent.
type Config struct {
	Operation Operation
	Algorithm Algorithm
	Mode      Mode
	Padding   Padding
	Key       []byte
	IV        []byte
	Tweak     []byte
	// Rounds overrides the round/strength parameter for algorithms that
	// support one (RC2 effective key bits); must be 0 otherwise.
	Rounds       int
	CounterOrder CounterOrder
}

// Cryptor is a single encryption or decryption session. It is not safe for
// concurrent use; distinct sessions are fully independent.
type Cryptor struct {
	op        Operation
	alg       Algorithm
	mode      Mode
	padding   Padding
	blockSize int
	aligned   bool // mode consumes whole blocks
	driver    modeDriver
	buf       []byte // pending input, exclusively owned
	processed uint64
	finalized bool
	closed    bool
}

// New validates the configuration and constructs a session. It fails fast
// with a ParamError on any invalid or incompatible combination and with an
// Unimplemented error for the F8 and LRW modes.
func New(cfg Config) (*Cryptor, error) {
	switch cfg.Mode {
	case ModeF8, ModeLRW:
		return nil, NewUnimplemented("mode %s is not supported", cfg.Mode)
	}
	minfo, ok := modes[cfg.Mode]
	if !ok {
		return nil, NewParamError("unknown mode %d", int(cfg.Mode))
	}
	ainfo, ok := algorithms[cfg.Algorithm]
	if !ok {
		return nil, NewParamError("unknown algorithm %d", int(cfg.Algorithm))
	}
	if cfg.Operation != Encrypt && cfg.Operation != Decrypt {
		return nil, NewParamError("unknown operation %d", int(cfg.Operation))
	}

	// RC4 is the only stream algorithm and pairs only with the RC4 mode.
	if (cfg.Algorithm == RC4) != (cfg.Mode == ModeRC4) {
		return nil, NewParamError("algorithm %s cannot be used with mode %s", cfg.Algorithm, cfg.Mode)
	}
	if !cfg.Algorithm.validKeySize(len(cfg.Key)) {
		return nil, NewParamError("invalid %s key length %d", cfg.Algorithm, len(cfg.Key))
	}
	if cfg.Padding == PKCS7 && !minfo.allowPadding {
		return nil, NewParamError("PKCS7 padding is not valid with mode %s", cfg.Mode)
	}
	if cfg.Mode == ModeXTS {
		if cfg.Algorithm != AES {
			return nil, NewParamError("XTS requires AES")
		}
		if len(cfg.Tweak) != ainfo.blockSize {
			return nil, NewParamError("XTS tweak must be %d bytes, got %d", ainfo.blockSize, len(cfg.Tweak))
		}
	} else if len(cfg.Tweak) != 0 {
		return nil, NewParamError("tweak is only valid for XTS mode")
	}
	if minfo.needsIV && len(cfg.IV) != ainfo.blockSize {
		return nil, NewParamError("mode %s requires a %d-byte IV, got %d", cfg.Mode, ainfo.blockSize, len(cfg.IV))
	}

	c := &Cryptor{
		op:        cfg.Operation,
		alg:       cfg.Algorithm,
		mode:      cfg.Mode,
		padding:   cfg.Padding,
		blockSize: ainfo.blockSize,
		aligned:   minfo.blockAligned,
	}

	if cfg.Algorithm == RC4 {
		if cfg.Rounds != 0 {
			return nil, NewParamError("RC4 does not accept a rounds override")
		}
		driver, err := newRC4(cfg.Key)
		if err != nil {
			return nil, err
		}
		c.driver = driver
		return c, nil
	}

	block, err := newBlockCipher(cfg.Algorithm, cfg.Key, cfg.Rounds)
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, NewParamError("%s key schedule failed: %v", cfg.Algorithm, err)
	}

	switch cfg.Mode {
	case ModeECB:
		c.driver = newECB(block, cfg.Operation)
	case ModeCBC:
		c.driver = newCBC(block, cfg.Operation, cfg.IV)
	case ModeCFB:
		c.driver = newCFB(block, cfg.Operation, cfg.IV)
	case ModeCFB8:
		c.driver = newCFB8(block, cfg.Operation, cfg.IV)
	case ModeOFB:
		c.driver = newOFB(block, cfg.IV)
	case ModeCTR:
		c.driver = newCTR(block, cfg.IV, cfg.CounterOrder)
	case ModeXTS:
		c.driver = newXTS(block, cfg.Operation, cfg.Tweak)
	}
	return c, nil
}

// holdback returns how many buffered bytes must not be processed during
// Update. Decrypting with padding withholds one full block so the final
// block's padding can be validated at Final.
func (c *Cryptor) holdback() int {
	if c.op == Decrypt && c.padding == PKCS7 {
		return c.blockSize
	}
	return 0
}

// Update feeds input through the session and returns any output produced.
// Input is never partially consumed: every byte is either transformed or
// buffered until a whole block is available.
func (c *Cryptor) Update(in []byte) ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	c.processed += uint64(len(in))

	if !c.aligned {
		out := make([]byte, len(in))
		c.driver.Process(out, in)
		return out, nil
	}

	total := len(c.buf) + len(in)
	p := 0
	if avail := total - c.holdback(); avail >= c.blockSize {
		p = avail - avail%c.blockSize
	}
	if p == 0 {
		c.buf = append(c.buf, in...)
		return nil, nil
	}

	combined := make([]byte, total)
	copy(combined, c.buf)
	copy(combined[len(c.buf):], in)

	out := make([]byte, p)
	c.driver.Process(out, combined[:p])

	wipeBytes(c.buf)
	c.buf = append(c.buf[:0], combined[p:]...)
	wipeBytes(combined)
	return out, nil
}

// Final flushes the session. For padded block modes it applies PKCS#7 on
// encrypt and validates/strips it on decrypt; unpadded block modes require
// the input to have been block aligned. After Final only Reset or Close
// may be called.
func (c *Cryptor) Final() ([]byte, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	c.finalized = true

	if !c.aligned {
		// Stream-equivalent modes may legally end mid-block; everything
		// was already emitted by Update.
		return nil, nil
	}

	if c.padding != PKCS7 {
		if len(c.buf) != 0 {
			return nil, NewParamError("%s input is not block aligned: %d trailing bytes", c.mode, len(c.buf))
		}
		return nil, nil
	}

	if c.op == Encrypt {
		padded := pkcs7Pad(c.buf, c.blockSize)
		out := make([]byte, len(padded))
		c.driver.Process(out, padded)
		wipeBytes(padded)
		wipeBytes(c.buf)
		c.buf = c.buf[:0]
		return out, nil
	}

	// Decrypt: the streaming buffer withheld the final ciphertext block.
	if len(c.buf)%c.blockSize != 0 {
		return nil, NewParamError("ciphertext is not block aligned: %d trailing bytes", len(c.buf)%c.blockSize)
	}
	if len(c.buf) == 0 {
		return nil, NewDecodeError("ciphertext is missing its padding block")
	}
	block := make([]byte, c.blockSize)
	c.driver.Process(block, c.buf)
	wipeBytes(c.buf)
	c.buf = c.buf[:0]

	payload, err := pkcs7Unpad(block, c.blockSize)
	if err != nil {
		wipeBytes(block)
		return nil, err
	}
	return payload, nil
}

// Reset reinitializes IV/counter/tweak and buffer state while retaining
// the key schedule. Modes that carry an IV (or tweak) require a fresh one.
func (c *Cryptor) Reset(iv []byte) error {
	if c.closed {
		return NewParamError("cryptor is closed")
	}
	needsIV := modes[c.mode].needsIV || c.mode == ModeXTS
	if needsIV && len(iv) == 0 {
		return NewParamError("mode %s requires a fresh IV on reset", c.mode)
	}
	if needsIV {
		if err := c.driver.Reset(iv); err != nil {
			return err
		}
	} else if err := c.driver.Reset(nil); err != nil {
		return err
	}
	wipeBytes(c.buf)
	c.buf = c.buf[:0]
	c.processed = 0
	c.finalized = false
	return nil
}

// OutputLength returns an upper bound on the bytes an immediately
// following Update (or Final, when final is true) will emit for
// additional input bytes.
func (c *Cryptor) OutputLength(additional int, final bool) (int, error) {
	if c.closed {
		return 0, NewParamError("cryptor is closed")
	}
	if additional < 0 {
		return 0, NewParamError("negative input length")
	}
	if !c.aligned {
		return additional, nil
	}
	if additional > math.MaxInt-len(c.buf)-c.blockSize {
		return 0, NewOverflow("output length overflows")
	}
	total := len(c.buf) + additional

	if final {
		if c.padding == PKCS7 && c.op == Encrypt {
			return total - total%c.blockSize + c.blockSize, nil
		}
		return total, nil
	}
	avail := total - c.holdback()
	if avail < c.blockSize {
		return 0, nil
	}
	return avail - avail%c.blockSize, nil
}

// Processed returns the total number of input bytes accepted since
// creation or the last Reset.
func (c *Cryptor) Processed() uint64 {
	return c.processed
}

// BlockSize returns the algorithm block size, 0 for RC4
func (c *Cryptor) BlockSize() int {
	return c.blockSize
}

// Close releases the session, zeroing buffered input and retained key
// material. It is idempotent; any other use after Close is a checked
// ParamError.
func (c *Cryptor) Close() error {
	if c.closed {
		return nil
	}
	wipeBytes(c.buf)
	c.buf = nil
	if d, ok := c.driver.(*rc4Driver); ok {
		d.wipe()
	}
	c.closed = true
	return nil
}

func (c *Cryptor) usable() error {
	if c.closed {
		return NewParamError("cryptor is closed")
	}
	if c.finalized {
		return NewParamError("cryptor is finalized; Reset before reuse")
	}
	return nil
}

// wipeBytes zeroes a byte slice in place
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
