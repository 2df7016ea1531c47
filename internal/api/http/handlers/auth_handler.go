package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/api/dto"
	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/service"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// AuthHandler manages console session endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Exchange POST /auth/exchange.
func (h *AuthHandler) Exchange(c *fiber.Ctx) error {
	var req dto.ExchangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Exchange(c.UserContext(), req.AccessToken)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ExchangeResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		UserID:    result.User.ID,
		UserName:  result.User.Name,
		Role:      string(result.User.Role),
	}})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	h.service.Logout(sess)
	return c.SendStatus(http.StatusNoContent)
}
