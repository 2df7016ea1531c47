package upstream

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// flexTime decodes RFC3339 timestamps leniently: an empty or unparseable
// value becomes the zero time instead of failing the whole response, so a
// single malformed entry never drops its record from the feed.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = flexTime(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		*t = flexTime(time.Time{})
		return nil
	}
	*t = flexTime(parsed)
	return nil
}

func (t flexTime) Time() time.Time { return time.Time(t) }

type userWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (w userWire) toDomain() domain.User {
	return domain.User{ID: w.ID, Name: w.Name, Role: domain.Role(w.Role)}
}

type ticketWire struct {
	ID              string   `json:"id"`
	TargetType      string   `json:"target_type"`
	TargetID        string   `json:"target_id"`
	TargetOwnerName string   `json:"target_owner_name"`
	Status          string   `json:"status"`
	AssignedToID    *string  `json:"assigned_to_id"`
	AssignedToName  *string  `json:"assigned_to_name"`
	IsEscalated     bool     `json:"is_escalated"`
	Reason          string   `json:"reason"`
	ResolutionNote  string   `json:"resolution_note"`
	ReportedByID    string   `json:"reported_by_id"`
	CreatedAt       flexTime `json:"created_at"`
	UpdatedAt       flexTime `json:"updated_at"`
}

func (w ticketWire) toDomain() domain.Ticket {
	return domain.Ticket{
		ID:              w.ID,
		TargetType:      domain.TargetType(w.TargetType),
		TargetID:        w.TargetID,
		TargetOwnerName: w.TargetOwnerName,
		Status:          domain.TicketStatus(w.Status),
		AssignedToID:    w.AssignedToID,
		AssignedToName:  w.AssignedToName,
		IsEscalated:     w.IsEscalated,
		Reason:          w.Reason,
		ResolutionNote:  w.ResolutionNote,
		ReportedByID:    w.ReportedByID,
		CreatedAt:       w.CreatedAt.Time(),
		UpdatedAt:       w.UpdatedAt.Time(),
	}
}

type commentWire struct {
	ID        string   `json:"id"`
	TicketID  string   `json:"ticket_id"`
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name"`
	Content   string   `json:"content"`
	Mentions  []string `json:"mentions"`
	CreatedAt flexTime `json:"created_at"`
}

func (w commentWire) toDomain() domain.TicketComment {
	return domain.TicketComment{
		ID:        w.ID,
		TicketID:  w.TicketID,
		UserID:    w.UserID,
		UserName:  w.UserName,
		Content:   w.Content,
		Mentions:  w.Mentions,
		CreatedAt: w.CreatedAt.Time(),
	}
}

type actionWire struct {
	ID            string          `json:"id"`
	TicketID      string          `json:"ticket_id"`
	ActionType    string          `json:"action_type"`
	PerformedBy   string          `json:"performed_by"`
	PerformedByID string          `json:"performed_by_id"`
	Timestamp     flexTime        `json:"timestamp"`
	Details       json.RawMessage `json:"details"`
}

func (w actionWire) toDomain() (domain.TicketAction, error) {
	details, err := domain.DecodeActionDetails(domain.ActionType(w.ActionType), w.Details)
	if err != nil {
		return domain.TicketAction{}, err
	}
	return domain.TicketAction{
		ID:            w.ID,
		TicketID:      w.TicketID,
		Type:          domain.ActionType(w.ActionType),
		PerformedBy:   w.PerformedBy,
		PerformedByID: w.PerformedByID,
		Timestamp:     w.Timestamp.Time(),
		Details:       details,
	}, nil
}

type flagRecordWire struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"task_id"`
	Status      string   `json:"status"`
	Notes       string   `json:"notes"`
	Completed   bool     `json:"completed"`
	CompletedAt *string  `json:"completed_at"`
	UpdatedAt   flexTime `json:"updated_at"`
}

func (w flagRecordWire) toDomain() domain.FlagRecord {
	rec := domain.FlagRecord{
		ID:        w.ID,
		TaskID:    w.TaskID,
		Status:    domain.TaskStatus(w.Status),
		Notes:     w.Notes,
		Completed: w.Completed,
	}
	if w.CompletedAt != nil {
		if t, err := time.Parse(time.RFC3339, *w.CompletedAt); err == nil {
			rec.CompletedAt = &t
		}
	}
	return rec
}
