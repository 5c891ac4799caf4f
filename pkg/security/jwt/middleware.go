package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/dragonball/pkg/auth"
)

// Machine-readable rejection codes the gate emits alongside the error text.
const (
	CodeNoToken      = "NO_TOKEN"
	CodeExpiredToken = "EXPIRED_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeInvalidUser  = "INVALID_USER"
)

// Locals keys under which the gate attaches the authenticated identity.
const (
	LocalUserID   = "userId"
	LocalEmail    = "userEmail"
	LocalUsername = "username"
)

// NewAuthMiddleware returns a Fiber middleware guarding protected routes.
// The gate is linear: no token, failed verification, vanished user, or
// allow. Rejected requests are terminated here with {error, code}; the
// downstream handler never runs. The store lookup defends against tokens
// issued for users that were removed afterwards.
func NewAuthMiddleware(tokens auth.TokenService, users auth.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get("Authorization"))
		if tokenStr == "" {
			return reject(c, http.StatusUnauthorized, "Token de acceso requerido", CodeNoToken)
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return reject(c, http.StatusUnauthorized, "Token expirado", CodeExpiredToken)
			case errors.Is(err, auth.ErrTokenMalformed):
				return reject(c, http.StatusForbidden, "Token malformado", CodeInvalidToken)
			default:
				return reject(c, http.StatusForbidden, "Token inválido", CodeInvalidToken)
			}
		}

		if _, err := users.GetByID(c.Context(), claims.ID); err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				return reject(c, http.StatusUnauthorized, "Usuario no válido", CodeInvalidUser)
			}
			return fiber.ErrInternalServerError
		}

		c.Locals(LocalUserID, claims.ID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}

// bearerToken extracts the raw token from an Authorization header.
// Supports both "Bearer <token>" and "<token>" (no prefix).
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func reject(c *fiber.Ctx, status int, msg, code string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg, "code": code})
}
