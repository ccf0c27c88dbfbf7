// Package secret abstracts credential verification so the storage format of
// stored secrets can change without touching the login pipeline.
package secret

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

type Verifier interface {
	// Verify reports whether the supplied password matches the stored secret.
	// The supplied value is compared verbatim; any trimming happens (or
	// deliberately does not happen) upstream.
	Verify(supplied, stored string) bool
}

// Bcrypt expects stored secrets to be bcrypt hashes. This is the default
// wiring for real deployments.
type Bcrypt struct{}

func (Bcrypt) Verify(supplied, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// Plaintext compares against plaintext stored secrets, for fixture
// directories seeded with literal passwords. Constant-time so the teaching
// mode does not add a timing side channel.
type Plaintext struct{}

func (Plaintext) Verify(supplied, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}

// HashSecret produces a bcrypt hash for seeding bcrypt-mode directories.
func HashSecret(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
