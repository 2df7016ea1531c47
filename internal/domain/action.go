package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionType captures what kind of moderation action was taken.
type ActionType string

const (
	ActionStatusChange ActionType = "status_change"
	ActionAssignment   ActionType = "assignment"
	ActionUnassignment ActionType = "unassignment"
	ActionResolution   ActionType = "resolution"
	ActionCreation     ActionType = "creation"
	ActionEscalation   ActionType = "escalation"
	ActionWarning      ActionType = "warning"
)

// ActionDetails is the closed set of per-type action payloads. Each variant
// carries only the fields its action type defines, so rendering code can
// switch exhaustively instead of probing a loose map.
type ActionDetails interface {
	actionType() ActionType
}

// StatusChangeDetails records a status transition.
type StatusChangeDetails struct {
	OldValue TicketStatus `json:"old_value"`
	NewValue TicketStatus `json:"new_value"`
}

// AssignmentDetails records who a ticket was handed to.
type AssignmentDetails struct {
	AssigneeID   string `json:"assignee_id"`
	AssigneeName string `json:"assignee_name"`
}

// UnassignmentDetails records an assignment being cleared.
type UnassignmentDetails struct {
	PreviousAssigneeName string `json:"previous_assignee_name"`
}

// ResolutionDetails records how a ticket was closed out.
type ResolutionDetails struct {
	Outcome TicketStatus `json:"outcome"`
	Note    string       `json:"note"`
	Reason  string       `json:"reason,omitempty"`
}

// CreationDetails records where a ticket came from.
type CreationDetails struct {
	FlagID string `json:"flag_id,omitempty"`
	Source string `json:"source"`
}

// EscalationDetails records a ticket being escalated for admin attention.
type EscalationDetails struct {
	Reason string `json:"reason"`
}

// WarningDetails records a formal warning issued to a user.
type WarningDetails struct {
	Reason   string     `json:"reason"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

func (StatusChangeDetails) actionType() ActionType { return ActionStatusChange }
func (AssignmentDetails) actionType() ActionType   { return ActionAssignment }
func (UnassignmentDetails) actionType() ActionType { return ActionUnassignment }
func (ResolutionDetails) actionType() ActionType   { return ActionResolution }
func (CreationDetails) actionType() ActionType     { return ActionCreation }
func (EscalationDetails) actionType() ActionType   { return ActionEscalation }
func (WarningDetails) actionType() ActionType      { return ActionWarning }

// TicketAction is an immutable audit-log entry on a ticket.
type TicketAction struct {
	ID            string
	TicketID      string
	Type          ActionType
	PerformedBy   string
	PerformedByID string
	Timestamp     time.Time
	Details       ActionDetails
}

// DecodeActionDetails unmarshals the raw details payload for the given
// action type into its concrete variant.
func DecodeActionDetails(t ActionType, raw json.RawMessage) (ActionDetails, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	switch t {
	case ActionStatusChange:
		var d StatusChangeDetails
		return d, json.Unmarshal(raw, &d)
	case ActionAssignment:
		var d AssignmentDetails
		return d, json.Unmarshal(raw, &d)
	case ActionUnassignment:
		var d UnassignmentDetails
		return d, json.Unmarshal(raw, &d)
	case ActionResolution:
		var d ResolutionDetails
		return d, json.Unmarshal(raw, &d)
	case ActionCreation:
		var d CreationDetails
		return d, json.Unmarshal(raw, &d)
	case ActionEscalation:
		var d EscalationDetails
		return d, json.Unmarshal(raw, &d)
	case ActionWarning:
		var d WarningDetails
		return d, json.Unmarshal(raw, &d)
	default:
		return nil, fmt.Errorf("unknown action type %q", t)
	}
}

// Describe renders a human-readable one-liner for the action.
func (a TicketAction) Describe() string {
	switch d := a.Details.(type) {
	case StatusChangeDetails:
		return fmt.Sprintf("%s changed status from %s to %s", a.PerformedBy, d.OldValue, d.NewValue)
	case AssignmentDetails:
		return fmt.Sprintf("%s assigned the ticket to %s", a.PerformedBy, d.AssigneeName)
	case UnassignmentDetails:
		return fmt.Sprintf("%s unassigned %s", a.PerformedBy, d.PreviousAssigneeName)
	case ResolutionDetails:
		if d.Reason != "" {
			return fmt.Sprintf("%s closed the ticket as %s: %s", a.PerformedBy, d.Outcome, d.Reason)
		}
		return fmt.Sprintf("%s closed the ticket as %s", a.PerformedBy, d.Outcome)
	case CreationDetails:
		if d.FlagID != "" {
			return fmt.Sprintf("ticket created from flag %s", d.FlagID)
		}
		return fmt.Sprintf("ticket created (%s)", d.Source)
	case EscalationDetails:
		return fmt.Sprintf("%s escalated the ticket: %s", a.PerformedBy, d.Reason)
	case WarningDetails:
		if d.Deadline != nil {
			return fmt.Sprintf("%s warned the user (deadline %s): %s", a.PerformedBy, d.Deadline.Format("2006-01-02"), d.Reason)
		}
		return fmt.Sprintf("%s warned the user: %s", a.PerformedBy, d.Reason)
	default:
		return fmt.Sprintf("%s performed %s", a.PerformedBy, a.Type)
	}
}
