package service

import (
	"github.com/golang-jwt/jwt/v5"

	"gatehouse/internal/domain/entity"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueToken creates a signed session token for a given user, embedding
	// the user's identity and an expiry derived from the configured lifetime.
	IssueToken(user *entity.User) (string, error)

	// VerifyToken checks the signature and expiry of a token string and
	// returns the embedded claims. It fails closed: a malformed, tampered
	// or expired token yields an error, never partial claims.
	VerifyToken(tokenString string) (*Claims, error)
}
