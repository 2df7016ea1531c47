package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// CurrentUser validates the upstream token and returns its owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	var wire struct {
		Data userWire `json:"data"`
	}
	if err := c.get(ctx, token, "/api/me", &wire); err != nil {
		return domain.User{}, err
	}
	return wire.Data.toDomain(), nil
}

// GetTickets fetches the full moderation ticket list. The backend applies
// no filtering; the console filters and paginates client-side.
func (c *Client) GetTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	var wire struct {
		Data []ticketWire `json:"data"`
	}
	if err := c.get(ctx, token, "/api/moderation/tickets", &wire); err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(wire.Data))
	for _, w := range wire.Data {
		tickets = append(tickets, w.toDomain())
	}
	return tickets, nil
}

// GetTicket fetches one ticket.
func (c *Client) GetTicket(ctx context.Context, token, ticketID string) (domain.Ticket, error) {
	var wire struct {
		Data ticketWire `json:"data"`
	}
	path := "/api/moderation/tickets/" + url.PathEscape(ticketID)
	if err := c.get(ctx, token, path, &wire); err != nil {
		return domain.Ticket{}, err
	}
	return wire.Data.toDomain(), nil
}

// GetTicketComments fetches a ticket's comment thread.
func (c *Client) GetTicketComments(ctx context.Context, token, ticketID string) ([]domain.TicketComment, error) {
	var wire struct {
		Data []commentWire `json:"data"`
	}
	path := fmt.Sprintf("/api/moderation/tickets/%s/comments", url.PathEscape(ticketID))
	if err := c.get(ctx, token, path, &wire); err != nil {
		return nil, err
	}
	comments := make([]domain.TicketComment, 0, len(wire.Data))
	for _, w := range wire.Data {
		comments = append(comments, w.toDomain())
	}
	return comments, nil
}

// GetTicketActions fetches a ticket's audit log.
func (c *Client) GetTicketActions(ctx context.Context, token, ticketID string) ([]domain.TicketAction, error) {
	var wire struct {
		Data []actionWire `json:"data"`
	}
	path := fmt.Sprintf("/api/moderation/tickets/%s/actions", url.PathEscape(ticketID))
	if err := c.get(ctx, token, path, &wire); err != nil {
		return nil, err
	}
	actions := make([]domain.TicketAction, 0, len(wire.Data))
	for _, w := range wire.Data {
		action, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decoding action %s: %w", w.ID, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// StatusUpdate carries an UpdateTicketStatus request.
type StatusUpdate struct {
	Status           domain.TicketStatus `json:"status"`
	ResolutionNote   string              `json:"resolution_note,omitempty"`
	ResolutionReason string              `json:"resolution_reason,omitempty"`
}

// UpdateTicketStatus submits a status change and returns the server's view
// of the ticket afterwards.
func (c *Client) UpdateTicketStatus(ctx context.Context, token, ticketID string, update StatusUpdate) (domain.Ticket, error) {
	var wire struct {
		Data ticketWire `json:"data"`
	}
	path := fmt.Sprintf("/api/moderation/tickets/%s/status", url.PathEscape(ticketID))
	if err := c.patch(ctx, token, path, update, &wire); err != nil {
		return domain.Ticket{}, err
	}
	return wire.Data.toDomain(), nil
}

// AssignTicket assigns a ticket to the given moderator; an empty assignee
// clears the assignment.
func (c *Client) AssignTicket(ctx context.Context, token, ticketID, assigneeID string) (domain.Ticket, error) {
	var wire struct {
		Data ticketWire `json:"data"`
	}
	body := map[string]string{"assignee_id": assigneeID}
	path := fmt.Sprintf("/api/moderation/tickets/%s/assign", url.PathEscape(ticketID))
	if err := c.post(ctx, token, path, body, &wire); err != nil {
		return domain.Ticket{}, err
	}
	return wire.Data.toDomain(), nil
}

// UnassignTicket clears a ticket's assignment.
func (c *Client) UnassignTicket(ctx context.Context, token, ticketID string) (domain.Ticket, error) {
	var wire struct {
		Data ticketWire `json:"data"`
	}
	path := fmt.Sprintf("/api/moderation/tickets/%s/unassign", url.PathEscape(ticketID))
	if err := c.post(ctx, token, path, nil, &wire); err != nil {
		return domain.Ticket{}, err
	}
	return wire.Data.toDomain(), nil
}

// EscalateTicket marks a ticket for admin attention.
func (c *Client) EscalateTicket(ctx context.Context, token, ticketID, reason string) (domain.Ticket, error) {
	var wire struct {
		Data ticketWire `json:"data"`
	}
	body := map[string]string{"reason": reason}
	path := fmt.Sprintf("/api/moderation/tickets/%s/escalate", url.PathEscape(ticketID))
	if err := c.post(ctx, token, path, body, &wire); err != nil {
		return domain.Ticket{}, err
	}
	return wire.Data.toDomain(), nil
}

// WarnUser issues a formal warning to a user.
func (c *Client) WarnUser(ctx context.Context, token, userID, reason string, deadline *time.Time) error {
	body := map[string]interface{}{"reason": reason}
	if deadline != nil {
		body["deadline"] = deadline.Format(time.RFC3339)
	}
	path := fmt.Sprintf("/api/moderation/users/%s/warn", url.PathEscape(userID))
	return c.post(ctx, token, path, body, nil)
}

// AddTicketComment appends a comment to a ticket's thread.
func (c *Client) AddTicketComment(ctx context.Context, token, ticketID, content string, mentions []string) (domain.TicketComment, error) {
	var wire struct {
		Data commentWire `json:"data"`
	}
	body := map[string]interface{}{"content": content}
	if len(mentions) > 0 {
		body["mentions"] = mentions
	}
	path := fmt.Sprintf("/api/moderation/tickets/%s/comments", url.PathEscape(ticketID))
	if err := c.post(ctx, token, path, body, &wire); err != nil {
		return domain.TicketComment{}, err
	}
	return wire.Data.toDomain(), nil
}
