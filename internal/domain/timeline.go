package domain

import "time"

// TimelineItemType distinguishes the two feed entry kinds.
type TimelineItemType string

const (
	TimelineComment TimelineItemType = "comment"
	TimelineAction  TimelineItemType = "action"
)

// TimelineItem is one entry in a ticket's merged activity feed. It is
// derived from the comment and action lists on every build and never stored.
// Exactly one of Comment or Action is set, matching Type.
type TimelineItem struct {
	ID        string
	Type      TimelineItemType
	Timestamp time.Time
	Comment   *TicketComment
	Action    *TicketAction
}
