package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the fixed cost for bcrypt hashing in this
	// deployment. A cost of 12 keeps hashing time reasonable while staying
	// expensive enough to resist offline attacks.
	DefaultBcryptCost = 12
)

// ErrMalformedDigest is returned by VerifyStrict when the stored digest is
// not a valid bcrypt hash. Digests are always self-produced, so this signals
// an internal error rather than a wrong password.
var ErrMalformedDigest = errors.New("malformed password digest")

// PasswordHasher provides password hashing and verification.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost: DefaultBcryptCost,
	}
}

// Hash generates a salted bcrypt digest of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the digest. Any failure,
// including a malformed digest, reads as a mismatch.
func (h *PasswordHasher) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}

// VerifyStrict is like Verify but separates "wrong password" (false, nil)
// from "digest is not a bcrypt hash" (false, ErrMalformedDigest).
func (h *PasswordHasher) VerifyStrict(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrMalformedDigest
}
