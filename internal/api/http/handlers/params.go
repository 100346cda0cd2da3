package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/auth"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

func idParam(c *fiber.Ctx, message string) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(message)
	}
	return int64(id), nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("User authorization denied")
	}
	return p, nil
}
