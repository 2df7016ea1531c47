package domain

import "time"

// TicketStatus enumerates lifecycle states for moderation tickets.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "open"
	TicketStatusReviewing TicketStatus = "reviewing"
	TicketStatusResolved  TicketStatus = "resolved"
	TicketStatusDismissed TicketStatus = "dismissed"
)

// IsTerminal reports whether the status closes out a ticket.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusDismissed
}

// TargetType identifies the kind of content a ticket is about.
type TargetType string

const (
	TargetTypeDeck    TargetType = "deck"
	TargetTypeCard    TargetType = "card"
	TargetTypeComment TargetType = "comment"
	TargetTypeUser    TargetType = "user"
)

// Ticket is a moderation work item, usually derived from a user-submitted
// flag, tracked through its status lifecycle. Transitions are deliberately
// unrestricted: moderators may move a ticket between any two states,
// including reopening resolved or dismissed tickets.
type Ticket struct {
	ID              string
	TargetType      TargetType
	TargetID        string
	TargetOwnerName string
	Status          TicketStatus
	AssignedToID    *string
	AssignedToName  *string
	IsEscalated     bool
	Reason          string
	ResolutionNote  string
	ReportedByID    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
