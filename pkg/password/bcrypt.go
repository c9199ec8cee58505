// Package password provides one-way hashing and verification of secrets.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes plain-text secrets and verifies them against stored hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt. Every call to Hash embeds a
// fresh random salt, so hashing the same secret twice yields different
// outputs that both verify.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given work factor.
// Costs outside bcrypt's supported range fall back to the default cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// bcrypt keys off at most 72 bytes of input; GenerateFromPassword rejects
// anything longer. Truncate explicitly in both Hash and Verify so long
// secrets hash without error and keep verifying consistently.
const maxSecretBytes = 72

func (h *BcryptHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncateSecret(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether plain matches hash. Malformed hash input yields
// false, never an error or panic.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncateSecret(plain)) == nil
}

func truncateSecret(plain string) []byte {
	secret := []byte(plain)
	if len(secret) > maxSecretBytes {
		secret = secret[:maxSecretBytes]
	}
	return secret
}
