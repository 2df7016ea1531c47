package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/domain"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// RequireRole ensures the session's user holds at least the given role.
func RequireRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !sess.User.Role.AtLeast(min) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
