package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flashy-app/moderation-console/internal/domain"
)

func TestDecodeActionDetails(t *testing.T) {
	cases := []struct {
		actionType domain.ActionType
		raw        string
		want       domain.ActionDetails
	}{
		{
			actionType: domain.ActionStatusChange,
			raw:        `{"old_value":"open","new_value":"reviewing"}`,
			want:       domain.StatusChangeDetails{OldValue: domain.TicketStatusOpen, NewValue: domain.TicketStatusReviewing},
		},
		{
			actionType: domain.ActionAssignment,
			raw:        `{"assignee_id":"mod-2","assignee_name":"robin"}`,
			want:       domain.AssignmentDetails{AssigneeID: "mod-2", AssigneeName: "robin"},
		},
		{
			actionType: domain.ActionUnassignment,
			raw:        `{"previous_assignee_name":"robin"}`,
			want:       domain.UnassignmentDetails{PreviousAssigneeName: "robin"},
		},
		{
			actionType: domain.ActionResolution,
			raw:        `{"outcome":"resolved","note":"content removed"}`,
			want:       domain.ResolutionDetails{Outcome: domain.TicketStatusResolved, Note: "content removed"},
		},
		{
			actionType: domain.ActionCreation,
			raw:        `{"flag_id":"f1","source":"user_flag"}`,
			want:       domain.CreationDetails{FlagID: "f1", Source: "user_flag"},
		},
		{
			actionType: domain.ActionEscalation,
			raw:        `{"reason":"repeat offender"}`,
			want:       domain.EscalationDetails{Reason: "repeat offender"},
		},
		{
			actionType: domain.ActionWarning,
			raw:        `{"reason":"harassment"}`,
			want:       domain.WarningDetails{Reason: "harassment"},
		},
	}
	for _, tc := range cases {
		t.Run(string(tc.actionType), func(t *testing.T) {
			got, err := domain.DecodeActionDetails(tc.actionType, json.RawMessage(tc.raw))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeActionDetailsEmptyPayload(t *testing.T) {
	got, err := domain.DecodeActionDetails(domain.ActionCreation, nil)
	require.NoError(t, err)
	require.Equal(t, domain.CreationDetails{}, got)
}

func TestDecodeActionDetailsUnknownType(t *testing.T) {
	_, err := domain.DecodeActionDetails(domain.ActionType("merge"), json.RawMessage(`{}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown action type")
}

func TestDescribe(t *testing.T) {
	deadline := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		action domain.TicketAction
		want   string
	}{
		{
			name: "status change",
			action: domain.TicketAction{
				PerformedBy: "casey",
				Details:     domain.StatusChangeDetails{OldValue: domain.TicketStatusOpen, NewValue: domain.TicketStatusReviewing},
			},
			want: "casey changed status from open to reviewing",
		},
		{
			name: "assignment",
			action: domain.TicketAction{
				PerformedBy: "casey",
				Details:     domain.AssignmentDetails{AssigneeName: "robin"},
			},
			want: "casey assigned the ticket to robin",
		},
		{
			name: "resolution with reason",
			action: domain.TicketAction{
				PerformedBy: "casey",
				Details:     domain.ResolutionDetails{Outcome: domain.TicketStatusDismissed, Reason: "duplicate"},
			},
			want: "casey closed the ticket as dismissed: duplicate",
		},
		{
			name: "creation from flag",
			action: domain.TicketAction{
				Details: domain.CreationDetails{FlagID: "f1"},
			},
			want: "ticket created from flag f1",
		},
		{
			name: "warning with deadline",
			action: domain.TicketAction{
				PerformedBy: "casey",
				Details:     domain.WarningDetails{Reason: "spam", Deadline: &deadline},
			},
			want: "casey warned the user (deadline 2026-03-15): spam",
		},
		{
			name: "missing details",
			action: domain.TicketAction{
				PerformedBy: "casey",
				Type:        domain.ActionEscalation,
			},
			want: "casey performed escalation",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.action.Describe())
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	require.False(t, domain.TicketStatusOpen.IsTerminal())
	require.False(t, domain.TicketStatusReviewing.IsTerminal())
	require.True(t, domain.TicketStatusResolved.IsTerminal())
	require.True(t, domain.TicketStatusDismissed.IsTerminal())

	require.False(t, domain.TaskStatusNotTested.IsTerminal())
	require.True(t, domain.TaskStatusWorks.IsTerminal())
	require.True(t, domain.TaskStatusBroken.IsTerminal())
}
