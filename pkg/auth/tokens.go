package auth

import (
	"context"
	"errors"
)

// Token failure kinds. Callers react differently to each: an expired or
// otherwise rejected session forces re-authentication, a malformed token
// is plain garbage.
var (
	ErrTokenExpired   = errors.New("token expirado")
	ErrTokenMalformed = errors.New("token malformado")
	ErrTokenInvalid   = errors.New("token inválido")
)

// Claims are the facts a session token asserts about its bearer.
type Claims struct {
	ID       int64
	Email    string
	Username string
}

// TokenService abstracts token issuance and verification (e.g. JWT).
// It allows use cases to stay framework-agnostic.
type TokenService interface {
	Generate(ctx context.Context, user User) (string, error)
	// Parse validates signature, issuer, audience and expiry, and fails
	// with exactly one of ErrTokenExpired, ErrTokenMalformed or
	// ErrTokenInvalid.
	Parse(token string) (Claims, error)
}
