package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing Iterations invalidates every stored hash,
// since the stored blob carries no parameter version.
const (
	SaltLength = 32
	KeyLength  = 32
	Iterations = 100000
)

// HashPassword derives a key from the password with a fresh random salt
// and returns the salt followed by the derived key as one opaque blob.
func HashPassword(password string) ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha256.New)
	return append(salt, key...), nil
}

// VerifyPassword recomputes the derived key using the salt stored in the
// blob and compares it against the stored key in constant time.
func VerifyPassword(password string, stored []byte) bool {
	if len(stored) != SaltLength+KeyLength {
		return false
	}

	salt := stored[:SaltLength]
	key := pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, stored[SaltLength:]) == 1
}
