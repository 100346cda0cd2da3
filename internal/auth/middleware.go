package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/domain"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

const principalKey = "user"

const (
	msgNoToken      = "User authorization denied"
	msgInvalidToken = "Token is not valid"
	msgAccessDenied = "Access denied"
)

// Principal represents the authenticated caller as decoded from its token.
type Principal struct {
	ID   int64
	Role domain.Role
}

// TokenVerifier verifies a raw token and returns its claims.
type TokenVerifier interface {
	ParseToken(token string) (*Claims, error)
}

// AuthMiddleware verifies tokens and enforces per-route role allow-lists.
type AuthMiddleware struct {
	tokens TokenVerifier
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require authenticates the request and admits it only when the token's role
// is in roles. With no roles any valid token is admitted.
func (m *AuthMiddleware) Require(roles ...domain.Role) fiber.Handler {
	allowed := newRoleSet(roles)

	return func(c *fiber.Ctx) error {
		// The header carries the raw token, without an auth scheme.
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			return apperrors.WithCause(apperrors.NewUnauthenticated(msgNoToken), ErrUnauthenticated)
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			return apperrors.WithCause(apperrors.NewInvalidToken(msgInvalidToken), err)
		}

		principal := &Principal{ID: claims.UserID, Role: claims.Role}
		c.Locals(principalKey, principal)

		if !allowed.permits(principal.Role) {
			return apperrors.WithCause(apperrors.NewForbidden(msgAccessDenied), ErrForbidden)
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
