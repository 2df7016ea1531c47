package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/session"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

const sessionKey = "auth_session"

// Middleware validates console bearer tokens and loads the session.
type Middleware struct {
	tokens   *TokenManager
	sessions *session.Manager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions *session.Manager) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	sess, ok := m.sessions.Get(claims.SessionID)
	if !ok {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(sessionKey, sess)
	return c.Next()
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*session.Session)
	return sess, ok
}
