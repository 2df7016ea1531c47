package service

import (
	"context"
	"errors"
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/upstream"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// Backend is the slice of the managed Flashy API the services consume.
// *upstream.Client satisfies it; tests substitute fakes.
type Backend interface {
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	GetTickets(ctx context.Context, token string) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, token, ticketID string) (domain.Ticket, error)
	GetTicketComments(ctx context.Context, token, ticketID string) ([]domain.TicketComment, error)
	GetTicketActions(ctx context.Context, token, ticketID string) ([]domain.TicketAction, error)
	UpdateTicketStatus(ctx context.Context, token, ticketID string, update upstream.StatusUpdate) (domain.Ticket, error)
	AssignTicket(ctx context.Context, token, ticketID, assigneeID string) (domain.Ticket, error)
	UnassignTicket(ctx context.Context, token, ticketID string) (domain.Ticket, error)
	EscalateTicket(ctx context.Context, token, ticketID, reason string) (domain.Ticket, error)
	WarnUser(ctx context.Context, token, userID, reason string, deadline *time.Time) error
	AddTicketComment(ctx context.Context, token, ticketID, content string, mentions []string) (domain.TicketComment, error)
	GetBetaTaskRecords(ctx context.Context, token string) ([]domain.FlagRecord, error)
	UpdateTaskStatus(ctx context.Context, token, taskID string, update upstream.TaskStatusUpdate) (domain.FlagRecord, error)
}

// mapUpstream converts backend failures into the console error taxonomy,
// preserving 4xx rejections and folding transport errors into 502/504.
func mapUpstream(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewUpstreamError(err, apiErr.Status)
	}
	return apperrors.NewUpstreamError(err, 0)
}
