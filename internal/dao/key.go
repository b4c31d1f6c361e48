package dao

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/cryptor-go/internal/cache"
	"github.com/cryptor-go/internal/storage"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyExists   = errors.New("key already exists")
)

// Key represents a stored named key. Material is hex-encoded; for
// password-derived keys it is empty and Salt/Iterations describe the KDF.
type Key struct {
	Name       string    `json:"name"`
	Algorithm  string    `json:"algorithm"`
	Material   string    `json:"material,omitempty"`
	Salt       string    `json:"salt,omitempty"`
	Iterations int       `json:"iterations,omitempty"`
	KeyLen     int       `json:"key_len,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Derived reports whether the key material comes from a password
func (k *Key) Derived() bool {
	return k.Material == "" && k.Salt != ""
}

// KeyDAO handles named key data access. Password-derived material is
// cached so the KDF runs once per key per TTL window, with concurrent
// derivations of the same key collapsed into one.
type KeyDAO struct {
	store   *storage.Store
	derived *cache.KeyCache
	flight  *cache.SingleFlight
}

// NewKeyDAO creates a new key DAO
func NewKeyDAO(store *storage.Store, cacheTTL time.Duration) *KeyDAO {
	return &KeyDAO{
		store:   store,
		derived: cache.NewKeyCache(cacheTTL),
		flight:  cache.NewSingleFlight(),
	}
}

// Create stores a new named key
func (d *KeyDAO) Create(key Key) error {
	var existing Key
	if err := d.store.GetJSON(storage.BucketKeys, key.Name, &existing); err != nil {
		return err
	}
	if existing.Name != "" {
		return ErrKeyExists
	}

	now := time.Now()
	key.CreatedAt = now
	key.UpdatedAt = now
	return d.store.SetJSON(storage.BucketKeys, key.Name, key)
}

// Get retrieves a named key
func (d *KeyDAO) Get(name string) (*Key, error) {
	var key Key
	if err := d.store.GetJSON(storage.BucketKeys, name, &key); err != nil {
		return nil, err
	}
	if key.Name == "" {
		return nil, ErrKeyNotFound
	}
	return &key, nil
}

// List returns all stored keys with their material redacted
func (d *KeyDAO) List() ([]Key, error) {
	raw, err := d.store.GetAll(storage.BucketKeys)
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(raw))
	for name := range raw {
		key, err := d.Get(name)
		if err != nil {
			return nil, err
		}
		key.Material = ""
		keys = append(keys, *key)
	}
	return keys, nil
}

// Update replaces a named key and invalidates any cached derivation
func (d *KeyDAO) Update(key Key) error {
	existing, err := d.Get(key.Name)
	if err != nil {
		return err
	}
	key.CreatedAt = existing.CreatedAt
	key.UpdatedAt = time.Now()
	// Cache entries are keyed by a name+password hash, so a targeted
	// invalidation is not possible; updates are rare enough to flush.
	d.derived.Clear()
	return d.store.SetJSON(storage.BucketKeys, key.Name, key)
}

// Delete removes a named key
func (d *KeyDAO) Delete(name string) error {
	d.derived.Clear()
	return d.store.Delete(storage.BucketKeys, name)
}

// Material resolves the raw key bytes for a stored key, running the KDF
// for password-derived entries.
func (d *KeyDAO) Material(name, password string) ([]byte, error) {
	key, err := d.Get(name)
	if err != nil {
		return nil, err
	}

	if !key.Derived() {
		material, err := hex.DecodeString(key.Material)
		if err != nil {
			return nil, fmt.Errorf("key %s has corrupt material: %w", name, err)
		}
		return material, nil
	}

	if password == "" {
		return nil, fmt.Errorf("key %s requires a password", name)
	}

	// Cache key covers the password so a wrong password never hits a
	// stale entry.
	sum := sha256.Sum256([]byte(name + "\x00" + password))
	cacheKey := hex.EncodeToString(sum[:])
	if material, ok := d.derived.Get(cacheKey); ok {
		return material, nil
	}

	material, err, _ := d.flight.Do(cacheKey, func() ([]byte, error) {
		salt, err := hex.DecodeString(key.Salt)
		if err != nil {
			return nil, fmt.Errorf("key %s has corrupt salt: %w", name, err)
		}
		keyLen := key.KeyLen
		if keyLen == 0 {
			keyLen = 32
		}
		derived := pbkdf2.Key([]byte(password), salt, key.Iterations, keyLen, sha256.New)
		d.derived.Set(cacheKey, derived)
		return derived, nil
	})
	return material, err
}
