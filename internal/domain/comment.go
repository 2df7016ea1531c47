package domain

import "time"

// TicketComment is a discussion entry on a ticket. Comments are immutable
// once created and only ever appended.
type TicketComment struct {
	ID        string
	TicketID  string
	UserID    string
	UserName  string
	Content   string
	Mentions  []string
	CreatedAt time.Time
}
