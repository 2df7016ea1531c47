package domain

import "time"

// TaskStatus enumerates beta-task test outcomes.
type TaskStatus string

const (
	TaskStatusNotTested TaskStatus = "not_tested"
	TaskStatusWorks     TaskStatus = "works"
	TaskStatusBroken    TaskStatus = "broken"
)

// IsTerminal reports whether the status represents a finished test.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusWorks || s == TaskStatusBroken
}

// FlagRecord tracks a beta tester's result for one task. Records are
// created lazily on first interaction and updated in place afterwards;
// both paths are applied optimistically and revert if the backend rejects
// the change.
type FlagRecord struct {
	ID          string
	TaskID      string
	Status      TaskStatus
	Notes       string
	Completed   bool
	CompletedAt *time.Time
}

// Flag is an immutable user-submitted content report. The backend derives
// a moderation ticket from each flag; the console only ever reads them.
type Flag struct {
	ID         string
	TargetType TargetType
	TargetID   string
	Reason     string
	ReportedBy string
	TicketID   string
	CreatedAt  time.Time
}
