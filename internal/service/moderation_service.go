package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/flashy-app/moderation-console/internal/cache"
	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/events"
	"github.com/flashy-app/moderation-console/internal/listview"
	"github.com/flashy-app/moderation-console/internal/optimistic"
	"github.com/flashy-app/moderation-console/internal/session"
	"github.com/flashy-app/moderation-console/internal/timeline"
	"github.com/flashy-app/moderation-console/internal/upstream"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// ModerationService coordinates the moderation ticket workflows: list
// filtering/pagination, detail loading with the merged timeline, and the
// optimistic status-update flow.
type ModerationService struct {
	backend    Backend
	tickets    *cache.TicketCache
	dispatcher events.Dispatcher
}

// ModerationDependencies bundles collaborators for the service.
type ModerationDependencies struct {
	Backend     Backend
	TicketCache *cache.TicketCache
	Dispatcher  events.Dispatcher
}

// NewModerationService constructs the service.
func NewModerationService(deps ModerationDependencies) *ModerationService {
	return &ModerationService{
		backend:    deps.Backend,
		tickets:    deps.TicketCache,
		dispatcher: deps.Dispatcher,
	}
}

// TicketDetail is the full view of one ticket: the record, its comment
// thread, its audit log, and the merged timeline derived from the last two.
type TicketDetail struct {
	Ticket   domain.Ticket
	Comments []domain.TicketComment
	Actions  []domain.TicketAction
	Timeline []domain.TimelineItem
}

// ListTickets returns the visible page of the moderator's ticket list.
// When the filter state differs from the session's previous one the page
// resets to 1; the effective page number is returned alongside the page.
// refresh bypasses the list cache and refetches server truth.
func (s *ModerationService) ListTickets(ctx context.Context, sess *session.Session, filters listview.FilterState, page, pageSize int, refresh bool) (listview.Page, int, error) {
	if sess.SwapFilter(filters) {
		page = 1
	}
	if page <= 0 {
		page = 1
	}

	var tickets []domain.Ticket
	ok := false
	if !refresh {
		tickets, ok = s.tickets.Get(ctx, sess.User.ID)
	}
	if !ok {
		fetched, err := s.backend.GetTickets(ctx, sess.Token)
		if err != nil {
			return listview.Page{}, page, mapUpstream(err)
		}
		tickets = fetched
		s.tickets.Set(ctx, sess.User.ID, tickets)
	}
	sess.SetTickets(tickets)

	return listview.SelectPage(tickets, filters, page, pageSize), page, nil
}

// LoadTicketDetail fetches the ticket, its comments, and its actions with
// three independent concurrent reads, then builds the merged timeline. The
// session's viewing pointer is updated on success.
func (s *ModerationService) LoadTicketDetail(ctx context.Context, sess *session.Session, ticketID string) (*TicketDetail, error) {
	var (
		ticket   domain.Ticket
		comments []domain.TicketComment
		actions  []domain.TicketAction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.backend.GetTicket(gctx, sess.Token, ticketID)
		ticket = t
		return err
	})
	g.Go(func() error {
		c, err := s.backend.GetTicketComments(gctx, sess.Token, ticketID)
		comments = c
		return err
	})
	g.Go(func() error {
		a, err := s.backend.GetTicketActions(gctx, sess.Token, ticketID)
		actions = a
		return err
	})
	if err := g.Wait(); err != nil {
		if upstream.IsNotFound(err) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, mapUpstream(err)
	}

	sess.SetViewing(session.Viewing{TicketID: ticket.ID})
	return &TicketDetail{
		Ticket:   ticket,
		Comments: comments,
		Actions:  actions,
		Timeline: timeline.Merge(comments, actions),
	}, nil
}

// UpdateStatus applies a ticket status change optimistically: the session's
// list shows the new status immediately, the backend is asked to confirm,
// and a failed confirmation restores the exact prior list. Resolved needs a
// resolution note and dismissed a reason; validation failures never reach
// the network.
func (s *ModerationService) UpdateStatus(ctx context.Context, sess *session.Session, ticketID string, newStatus domain.TicketStatus, note, reason string) (domain.Ticket, error) {
	switch newStatus {
	case domain.TicketStatusOpen, domain.TicketStatusReviewing, domain.TicketStatusResolved, domain.TicketStatusDismissed:
	default:
		return domain.Ticket{}, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	if newStatus == domain.TicketStatusResolved && strings.TrimSpace(note) == "" {
		return domain.Ticket{}, apperrors.NewValidationError("resolution note required", nil)
	}
	if newStatus == domain.TicketStatusDismissed && strings.TrimSpace(reason) == "" {
		return domain.Ticket{}, apperrors.NewValidationError("dismissal reason required", nil)
	}

	tickets := sess.Tickets()
	oldStatus := domain.TicketStatus("")
	found := false
	for _, t := range tickets {
		if t.ID == ticketID {
			oldStatus = t.Status
			found = true
			break
		}
	}
	if !found {
		// Detail screens can mutate a ticket that was never listed in this
		// session; pull it in so the optimistic edit has a record to touch.
		t, err := s.backend.GetTicket(ctx, sess.Token, ticketID)
		if err != nil {
			if upstream.IsNotFound(err) {
				return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
			}
			return domain.Ticket{}, mapUpstream(err)
		}
		oldStatus = t.Status
		tickets = append(tickets, t)
	}

	m := optimistic.Apply(tickets,
		func(t domain.Ticket) bool { return t.ID == ticketID },
		func(t domain.Ticket) domain.Ticket {
			t.Status = newStatus
			t.ResolutionNote = note
			t.UpdatedAt = time.Now()
			return t
		},
		func() domain.Ticket {
			// Unreachable: the record was just ensured above.
			return domain.Ticket{ID: ticketID, Status: newStatus}
		})

	var confirmed domain.Ticket
	commit := func(ctx context.Context) error {
		server, err := s.backend.UpdateTicketStatus(ctx, sess.Token, ticketID, upstream.StatusUpdate{
			Status:           newStatus,
			ResolutionNote:   note,
			ResolutionReason: reason,
		})
		if err != nil {
			return mapUpstream(err)
		}
		confirmed = server
		sess.ReplaceTicket(server)
		s.tickets.Invalidate(ctx, sess.User.ID)
		return nil
	}

	err := optimistic.Do(ctx, m, sess.SetTickets, commit, s.statusObserver(ctx, sess, events.TicketStatusFields(ticketID, oldStatus, newStatus)))
	if err != nil {
		return domain.Ticket{}, err
	}
	return confirmed, nil
}

// Assign hands the ticket to the given moderator; an empty assignee clears
// the assignment.
func (s *ModerationService) Assign(ctx context.Context, sess *session.Session, ticketID, assigneeID string) (domain.Ticket, error) {
	ticket, err := s.backend.AssignTicket(ctx, sess.Token, ticketID, assigneeID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return domain.Ticket{}, mapUpstream(err)
	}
	sess.ReplaceTicket(ticket)
	s.tickets.Invalidate(ctx, sess.User.ID)
	s.publish(ctx, sess, events.EventTicketAssigned, events.TicketAssignedPayload{
		TicketID:   ticket.ID,
		AssigneeID: ticket.AssignedToID,
	})
	return ticket, nil
}

// Unassign clears the ticket's assignment.
func (s *ModerationService) Unassign(ctx context.Context, sess *session.Session, ticketID string) (domain.Ticket, error) {
	ticket, err := s.backend.UnassignTicket(ctx, sess.Token, ticketID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return domain.Ticket{}, mapUpstream(err)
	}
	sess.ReplaceTicket(ticket)
	s.tickets.Invalidate(ctx, sess.User.ID)
	s.publish(ctx, sess, events.EventTicketAssigned, events.TicketAssignedPayload{
		TicketID: ticket.ID,
	})
	return ticket, nil
}

// Escalate marks the ticket for admin attention. A reason is required.
func (s *ModerationService) Escalate(ctx context.Context, sess *session.Session, ticketID, reason string) (domain.Ticket, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.Ticket{}, apperrors.NewValidationError("escalation reason required", nil)
	}
	ticket, err := s.backend.EscalateTicket(ctx, sess.Token, ticketID, reason)
	if err != nil {
		if upstream.IsNotFound(err) {
			return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return domain.Ticket{}, mapUpstream(err)
	}
	sess.ReplaceTicket(ticket)
	s.tickets.Invalidate(ctx, sess.User.ID)
	s.publish(ctx, sess, events.EventTicketEscalated, events.TicketEscalatedPayload{
		TicketID: ticket.ID,
		Reason:   reason,
	})
	return ticket, nil
}

// Warn issues a formal warning to a user. A reason is required.
func (s *ModerationService) Warn(ctx context.Context, sess *session.Session, userID, reason string, deadline *time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError("warning reason required", nil)
	}
	if err := s.backend.WarnUser(ctx, sess.Token, userID, reason, deadline); err != nil {
		if upstream.IsNotFound(err) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return mapUpstream(err)
	}
	s.publish(ctx, sess, events.EventUserWarned, events.UserWarnedPayload{
		UserID:   userID,
		Reason:   reason,
		Deadline: deadline,
	})
	return nil
}

// AddComment appends a comment to the ticket's thread.
func (s *ModerationService) AddComment(ctx context.Context, sess *session.Session, ticketID, content string, mentions []string) (domain.TicketComment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.TicketComment{}, apperrors.NewValidationError("comment content required", nil)
	}
	comment, err := s.backend.AddTicketComment(ctx, sess.Token, ticketID, strings.TrimSpace(content), mentions)
	if err != nil {
		if upstream.IsNotFound(err) {
			return domain.TicketComment{}, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return domain.TicketComment{}, mapUpstream(err)
	}
	s.publish(ctx, sess, events.EventCommentAdded, events.CommentAddedPayload{
		TicketID:  ticketID,
		CommentID: comment.ID,
		Mentions:  comment.Mentions,
	})
	return comment, nil
}

// statusObserver publishes one event per optimistic phase so subscribers
// can notify the user at each of the three transition points.
func (s *ModerationService) statusObserver(ctx context.Context, sess *session.Session, payload events.StatusTransitionPayload) func(optimistic.Phase) {
	return func(p optimistic.Phase) {
		var eventType events.EventType
		switch p {
		case optimistic.PhaseApplied:
			eventType = events.EventStatusApplied
		case optimistic.PhaseConfirmed:
			eventType = events.EventStatusConfirmed
		case optimistic.PhaseReverted:
			eventType = events.EventStatusReverted
		default:
			return
		}
		s.publish(ctx, sess, eventType, payload)
	}
}

func (s *ModerationService) publish(ctx context.Context, sess *session.Session, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   sess.User.ID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
