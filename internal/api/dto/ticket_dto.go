package dto

import (
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// TicketSummary response.
type TicketSummary struct {
	ID              string              `json:"id"`
	TargetType      domain.TargetType   `json:"target_type"`
	TargetID        string              `json:"target_id"`
	TargetOwnerName string              `json:"target_owner_name"`
	Status          domain.TicketStatus `json:"status"`
	AssignedToID    *string             `json:"assigned_to_id"`
	AssignedToName  *string             `json:"assigned_to_name"`
	IsEscalated     bool                `json:"is_escalated"`
	Reason          string              `json:"reason"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TicketListResponse is the filtered, paginated ticket list.
type TicketListResponse struct {
	Items      []TicketSummary `json:"items"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

// TicketDetailResponse provides the ticket plus its merged timeline.
type TicketDetailResponse struct {
	Ticket         TicketSummary      `json:"ticket"`
	ResolutionNote string             `json:"resolution_note"`
	Timeline       []TimelineItemResp `json:"timeline"`
}

// TimelineItemResp is one merged feed entry.
type TimelineItemResp struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Timestamp   time.Time    `json:"timestamp"`
	Comment     *CommentResp `json:"comment,omitempty"`
	Action      *ActionResp  `json:"action,omitempty"`
	Description string       `json:"description,omitempty"`
}

// CommentResp is a comment feed entry.
type CommentResp struct {
	UserID   string   `json:"user_id"`
	UserName string   `json:"user_name"`
	Content  string   `json:"content"`
	Mentions []string `json:"mentions,omitempty"`
}

// ActionResp is an audit-log feed entry.
type ActionResp struct {
	ActionType    domain.ActionType `json:"action_type"`
	PerformedBy   string            `json:"performed_by"`
	PerformedByID string            `json:"performed_by_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status           domain.TicketStatus `json:"status"`
	ResolutionNote   string              `json:"resolution_note"`
	ResolutionReason string              `json:"resolution_reason"`
}

// AssignRequest payload. An empty assignee clears the assignment.
type AssignRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// EscalateRequest payload.
type EscalateRequest struct {
	Reason string `json:"reason"`
}

// WarnRequest payload.
type WarnRequest struct {
	Reason   string     `json:"reason"`
	Deadline *time.Time `json:"deadline"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Content  string   `json:"content"`
	Mentions []string `json:"mentions"`
}
