package cryptor

import "strings"

// ParseAlgorithm resolves an algorithm by name, case-insensitive
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(name) {
	case "AES":
		return AES, nil
	case "DES":
		return DES, nil
	case "3DES", "TRIPLEDES":
		return TripleDES, nil
	case "CAST":
		return CAST, nil
	case "RC4":
		return RC4, nil
	case "RC2":
		return RC2, nil
	case "BLOWFISH":
		return Blowfish, nil
	}
	return 0, NewParamError("unknown algorithm %q", name)
}

// ParseMode resolves a mode by name, case-insensitive
func ParseMode(name string) (Mode, error) {
	switch strings.ToUpper(name) {
	case "ECB":
		return ModeECB, nil
	case "CBC":
		return ModeCBC, nil
	case "CFB":
		return ModeCFB, nil
	case "CFB8":
		return ModeCFB8, nil
	case "OFB":
		return ModeOFB, nil
	case "CTR":
		return ModeCTR, nil
	case "XTS":
		return ModeXTS, nil
	case "RC4":
		return ModeRC4, nil
	case "F8":
		return ModeF8, nil
	case "LRW":
		return ModeLRW, nil
	}
	return 0, NewParamError("unknown mode %q", name)
}

// ParsePadding resolves a padding policy by name; empty means none
func ParsePadding(name string) (Padding, error) {
	switch strings.ToUpper(name) {
	case "", "NONE":
		return NoPadding, nil
	case "PKCS7":
		return PKCS7, nil
	}
	return 0, NewParamError("unknown padding %q", name)
}

// ParseCounterOrder resolves CTR endianness; empty means big-endian
func ParseCounterOrder(name string) (CounterOrder, error) {
	switch strings.ToUpper(name) {
	case "", "BE", "BIG":
		return BigEndian, nil
	case "LE", "LITTLE":
		return LittleEndian, nil
	}
	return 0, NewParamError("unknown counter order %q", name)
}
