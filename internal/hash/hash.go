// ABOUTME: Deterministic salted credential digest used for password storage
// ABOUTME: Pepper and salt are injected at construction, never read from env

package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Default pepper/salt values used when the config leaves them unset.
const (
	DefaultPepper = "pepper"
	DefaultSalt   = "salt"
)

// Hasher computes deterministic digests of secrets. The same (pepper, salt,
// secret) triple always yields the same digest, so digests can be compared
// for equality. They cannot be reversed.
type Hasher struct {
	pepper string
	salt   string
}

// New creates a Hasher with the given pepper and salt. Empty values fall
// back to the fixed defaults.
func New(pepper, salt string) *Hasher {
	if pepper == "" {
		pepper = DefaultPepper
	}
	if salt == "" {
		salt = DefaultSalt
	}
	return &Hasher{pepper: pepper, salt: salt}
}

// Digest returns the lowercase hex SHA-256 of pepper || secret || salt.
// Total over any string input, including empty.
func (h *Hasher) Digest(secret string) string {
	sum := sha256.Sum256([]byte(h.pepper + secret + h.salt))
	return hex.EncodeToString(sum[:])
}
