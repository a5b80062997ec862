// Package auth holds the credential primitives of the server: password
// hashing, opaque access token generation and the signed session cookie.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// ErrPasswordTooLong is returned by Hash for inputs bcrypt cannot represent.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher validates cost against the bcrypt bounds.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hashed. Malformed hashes never match.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	return err == nil
}

// IsPasswordTooLong reports whether err came from an oversized password.
func IsPasswordTooLong(err error) bool {
	return errors.Is(err, ErrPasswordTooLong)
}
