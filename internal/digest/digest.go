// Package digest exposes the legacy message-digest algorithm set behind
// one registry: incremental hashing via hash.Hash and one-shot sums.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/md4"
)

// Algorithm identifies a digest algorithm
type Algorithm int

const (
	MD2 Algorithm = iota
	MD4
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

// digestInfo holds static per-algorithm metadata
type digestInfo struct {
	name  string
	size  int
	newFn func() hash.Hash
}

// table is read-only and safe for concurrent lookup
var table = map[Algorithm]digestInfo{
	MD2:    {name: "MD2", size: Size, newFn: NewMD2},
	MD4:    {name: "MD4", size: md4.Size, newFn: md4.New},
	MD5:    {name: "MD5", size: md5.Size, newFn: md5.New},
	SHA1:   {name: "SHA1", size: sha1.Size, newFn: sha1.New},
	SHA224: {name: "SHA224", size: sha256.Size224, newFn: sha256.New224},
	SHA256: {name: "SHA256", size: sha256.Size, newFn: sha256.New},
	SHA384: {name: "SHA384", size: sha512.Size384, newFn: sha512.New384},
	SHA512: {name: "SHA512", size: sha512.Size, newFn: sha512.New},
}

// String returns the algorithm name
func (a Algorithm) String() string {
	if info, ok := table[a]; ok {
		return info.name
	}
	return "unknown"
}

// DigestSize returns the digest length in bytes, 0 for unknown algorithms
func (a Algorithm) DigestSize() int {
	return table[a].size
}

// Parse resolves an algorithm by name (case-sensitive, e.g. "SHA256")
func Parse(name string) (Algorithm, error) {
	for a, info := range table {
		if info.name == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown digest algorithm %q", name)
}

// New returns an incremental hash for the algorithm
func New(a Algorithm) (hash.Hash, error) {
	info, ok := table[a]
	if !ok {
		return nil, fmt.Errorf("unknown digest algorithm %d", int(a))
	}
	return info.newFn(), nil
}

// Sum computes a one-shot digest. A nil data slice digests empty input.
func Sum(a Algorithm, data []byte) ([]byte, error) {
	h, err := New(a)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}
