package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/dragonball/pkg/auth"
)

// Generator issues and verifies HS256 session tokens bound to a fixed
// issuer and audience.
type Generator struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewGenerator(secret, issuer, audience string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Claims include the standard set plus the user identity facts.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Audience:  jwt.ClaimStrings{g.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Parse validates signature, issuer, audience and expiry. Failures collapse
// into the three domain kinds so callers can react per kind: structure and
// signature problems are malformed, elapsed expiry is expired, everything
// else (wrong issuer/audience, bad signing method) is invalid.
func (g *Generator) Parse(tokenStr string) (auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(g.issuer),
		jwt.WithAudience(g.audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return auth.Claims{}, auth.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return auth.Claims{}, auth.ErrTokenExpired
		default:
			return auth.Claims{}, auth.ErrTokenInvalid
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return auth.Claims{}, auth.ErrTokenInvalid
	}
	return auth.Claims{ID: claims.UserID, Email: claims.Email, Username: claims.Username}, nil
}

var _ auth.TokenService = (*Generator)(nil)
