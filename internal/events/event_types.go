package events

import (
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// The three optimistic transition points for any status mutation.
	EventStatusApplied   EventType = "status_applied"
	EventStatusConfirmed EventType = "status_confirmed"
	EventStatusReverted  EventType = "status_reverted"

	EventTicketEscalated EventType = "ticket_escalated"
	EventTicketAssigned  EventType = "ticket_assigned"
	EventCommentAdded    EventType = "comment_added"
	EventUserWarned      EventType = "user_warned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StatusTransitionPayload accompanies the applied/confirmed/reverted events
// so subscribers can tell the user which record changed and whether the
// change stuck.
type StatusTransitionPayload struct {
	TargetID  string `json:"target_id"`
	Kind      string `json:"kind"` // "ticket" or "task"
	NewStatus string `json:"new_status"`
	OldStatus string `json:"old_status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	TicketID string `json:"ticket_id"`
	Reason   string `json:"reason"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID   string  `json:"ticket_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	TicketID  string   `json:"ticket_id"`
	CommentID string   `json:"comment_id"`
	Mentions  []string `json:"mentions,omitempty"`
}

// UserWarnedPayload payload.
type UserWarnedPayload struct {
	UserID   string     `json:"user_id"`
	Reason   string     `json:"reason"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// TicketStatusFields extracts the transition payload fields for a ticket.
func TicketStatusFields(ticketID string, oldStatus, newStatus domain.TicketStatus) StatusTransitionPayload {
	return StatusTransitionPayload{
		TargetID:  ticketID,
		Kind:      "ticket",
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}
}

// TaskStatusFields extracts the transition payload fields for a beta task.
func TaskStatusFields(taskID string, oldStatus, newStatus domain.TaskStatus) StatusTransitionPayload {
	return StatusTransitionPayload{
		TargetID:  taskID,
		Kind:      "task",
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	}
}
