package cryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/cast5"

	"github.com/cryptor-go/internal/rc2"
)

// Operation selects the transform direction
type Operation int

const (
	Encrypt Operation = iota
	Decrypt
)

// String returns the operation name
func (op Operation) String() string {
	if op == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// Algorithm identifies a symmetric cipher primitive
type Algorithm int

const (
	AES Algorithm = iota
	DES
	TripleDES
	CAST
	RC4
	RC2
	Blowfish
)

// Mode identifies a mode of operation
type Mode int

const (
	ModeECB Mode = iota + 1
	ModeCBC
	ModeCFB
	ModeCTR
	ModeF8  // not supported
	ModeLRW // not supported
	ModeOFB
	ModeXTS
	ModeRC4
	ModeCFB8
)

// Padding identifies the padding policy for block-aligned modes
type Padding int

const (
	NoPadding Padding = iota
	PKCS7
)

// CounterOrder selects CTR counter endianness
type CounterOrder int

const (
	// BigEndian increments the counter from its trailing byte (the default)
	BigEndian CounterOrder = iota
	// LittleEndian increments the counter from its leading byte
	LittleEndian
)

// Block sizes in bytes. RC4 is a true stream cipher and has none.
const (
	BlockSizeAES      = 16
	BlockSizeDES      = 8
	BlockSize3DES     = 8
	BlockSizeCAST     = 8
	BlockSizeRC2      = 8
	BlockSizeBlowfish = 8
	BlockSizeRC4      = 0
)

// Key size limits in bytes
const (
	KeySizeAES128      = 16
	KeySizeAES192      = 24
	KeySizeAES256      = 32
	KeySizeDES         = 8
	KeySize3DES        = 24
	KeySizeMinCAST     = 5
	KeySizeMaxCAST     = 16
	KeySizeMinRC4      = 1
	KeySizeMaxRC4      = 512
	KeySizeMinRC2      = 1
	KeySizeMaxRC2      = 128
	KeySizeMinBlowfish = 8
	KeySizeMaxBlowfish = 56
)

// algorithmInfo holds static per-algorithm metadata
type algorithmInfo struct {
	name      string
	blockSize int
	keySizes  []int // exact sizes; nil when a min..max range applies
	keyMin    int
	keyMax    int
	varRounds bool // accepts a rounds override
}

// algorithms is a read-only table, safe for concurrent lookup
var algorithms = map[Algorithm]algorithmInfo{
	AES:       {name: "AES", blockSize: BlockSizeAES, keySizes: []int{KeySizeAES128, KeySizeAES192, KeySizeAES256}},
	DES:       {name: "DES", blockSize: BlockSizeDES, keySizes: []int{KeySizeDES}},
	TripleDES: {name: "3DES", blockSize: BlockSize3DES, keySizes: []int{KeySize3DES}},
	CAST:      {name: "CAST", blockSize: BlockSizeCAST, keyMin: KeySizeMinCAST, keyMax: KeySizeMaxCAST},
	RC4:       {name: "RC4", blockSize: BlockSizeRC4, keyMin: KeySizeMinRC4, keyMax: KeySizeMaxRC4},
	RC2:       {name: "RC2", blockSize: BlockSizeRC2, keyMin: KeySizeMinRC2, keyMax: KeySizeMaxRC2, varRounds: true},
	Blowfish:  {name: "Blowfish", blockSize: BlockSizeBlowfish, keyMin: KeySizeMinBlowfish, keyMax: KeySizeMaxBlowfish},
}

// String returns the algorithm name
func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return "unknown"
}

// BlockSize returns the algorithm block size in bytes, 0 for RC4
func (a Algorithm) BlockSize() int {
	return algorithms[a].blockSize
}

// validKeySize reports whether keyLen is acceptable for the algorithm
func (a Algorithm) validKeySize(keyLen int) bool {
	info, ok := algorithms[a]
	if !ok {
		return false
	}
	if info.keySizes != nil {
		for _, n := range info.keySizes {
			if keyLen == n {
				return true
			}
		}
		return false
	}
	return keyLen >= info.keyMin && keyLen <= info.keyMax
}

// modeInfo holds static per-mode metadata
type modeInfo struct {
	name         string
	blockAligned bool // input consumed in whole blocks
	needsIV      bool
	allowPadding bool // padding is only meaningful for block-aligned modes
}

var modes = map[Mode]modeInfo{
	ModeECB:  {name: "ECB", blockAligned: true, allowPadding: true},
	ModeCBC:  {name: "CBC", blockAligned: true, needsIV: true, allowPadding: true},
	ModeCFB:  {name: "CFB", needsIV: true},
	ModeCTR:  {name: "CTR", needsIV: true},
	ModeOFB:  {name: "OFB", needsIV: true},
	ModeXTS:  {name: "XTS", blockAligned: true},
	ModeRC4:  {name: "RC4"},
	ModeCFB8: {name: "CFB8", needsIV: true},
}

// String returns the mode name
func (m Mode) String() string {
	if info, ok := modes[m]; ok {
		return info.name
	}
	switch m {
	case ModeF8:
		return "F8"
	case ModeLRW:
		return "LRW"
	}
	return "unknown"
}

// newBlockCipher derives a key schedule for a block algorithm.
// rounds is only honored for RC2, where it selects the effective key
// length in bits; any other algorithm must pass 0.
func newBlockCipher(alg Algorithm, key []byte, rounds int) (cipher.Block, error) {
	if rounds != 0 && !algorithms[alg].varRounds {
		return nil, NewParamError("%s does not accept a rounds override", alg)
	}
	switch alg {
	case AES:
		return aes.NewCipher(key)
	case DES:
		return des.NewCipher(key)
	case TripleDES:
		return des.NewTripleDESCipher(key)
	case CAST:
		return cast5.NewCipher(key)
	case RC2:
		effective := rounds
		if effective == 0 {
			effective = len(key) * 8
		}
		return rc2.New(key, effective)
	case Blowfish:
		return blowfish.NewCipher(key)
	default:
		return nil, NewParamError("%s is not a block algorithm", alg)
	}
}
