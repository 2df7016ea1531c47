package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/session"
	"github.com/flashy-app/moderation-console/internal/upstream"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// AuthService exchanges upstream bearer tokens for console sessions. The
// console never stores credentials; the backend validates the token and
// tells us who is calling.
type AuthService struct {
	backend  Backend
	sessions *session.Manager
	tokens   *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(backend Backend, sessions *session.Manager, tokens *auth.TokenManager) *AuthService {
	return &AuthService{backend: backend, sessions: sessions, tokens: tokens}
}

// ExchangeResult is the outcome of a successful token exchange.
type ExchangeResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Exchange validates the upstream token, creates a session, and issues a
// console JWT bound to it. Only moderation roles may enter the console.
func (s *AuthService) Exchange(ctx context.Context, upstreamToken string) (*ExchangeResult, error) {
	if strings.TrimSpace(upstreamToken) == "" {
		return nil, apperrors.NewValidationError("access token required", nil)
	}

	user, err := s.backend.CurrentUser(ctx, upstreamToken)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == 401 || apiErr.Status == 403) {
			return nil, apperrors.NewUnauthorized("invalid access token")
		}
		return nil, mapUpstream(err)
	}
	if !user.Role.AtLeast(domain.RoleModerator) {
		return nil, apperrors.NewForbidden("moderation role required")
	}

	sess := s.sessions.Create(user, upstreamToken)
	token, expiresAt, err := s.tokens.GenerateToken(sess.ID, user.ID, user.Role)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, apperrors.NewInternalError(err)
	}
	return &ExchangeResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout drops the session.
func (s *AuthService) Logout(sess *session.Session) {
	s.sessions.Delete(sess.ID)
}
