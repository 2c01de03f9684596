// Package auth validates the bearer tokens issued by the platform's
// identity service. Token issuing, registration, and refresh flows live
// with that external service; this package only verifies signatures and
// extracts the user identity the engine attributes answer records to.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines the token validation operations used by the API
// middleware.
type JWTService interface {
	// ValidateToken validates the provided access token string and
	// extracts the claims. Returns the claims containing the user
	// identity if the token is valid, or an error if validation fails
	// (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated content of a bearer token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}
