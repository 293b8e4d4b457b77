// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"gatehouse/config"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface
// using bcrypt over a SHA-256 pre-digest.
//
// The plaintext is first reduced to the lowercase hex digest of its SHA-256
// hash, and that 64-character string is what bcrypt actually processes. This
// lifts bcrypt's 72-byte input limit, so passwords of any length participate
// fully in the hash. Stored hashes are only verifiable by going through the
// same two stages, so both must stay in lockstep.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil &&
		cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.WithStack(domainerrors.ErrInvalidInput)
	}

	bytes, err := bcrypt.GenerateFromPassword(digest(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "generate bcrypt hash")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a stored hash.
// A corrupt or truncated hash simply fails the comparison.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), digest(password))
	// err is nil if the password and hash match.
	return err == nil
}

// digest returns the lowercase hex SHA-256 digest of the password, the exact
// byte sequence handed to bcrypt on both the hash and check paths.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))

	return []byte(hex.EncodeToString(sum[:]))
}
