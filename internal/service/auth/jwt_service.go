package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService verifies bearer tokens issued by the identity service.
// Tokens are never signed here.
type JWTService interface {
	// ValidateToken checks the signature and time claims of tokenString and returns
	// the user it was issued for.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
