package listview_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/listview"
)

func sampleTickets() []domain.Ticket {
	me := "mod-1"
	other := "mod-2"
	return []domain.Ticket{
		{ID: "t1", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeDeck, TargetOwnerName: "alice"},
		{ID: "t2", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeCard, AssignedToID: &me},
		{ID: "t3", Status: domain.TicketStatusReviewing, TargetType: domain.TargetTypeDeck, IsEscalated: true},
		{ID: "t4", Status: domain.TicketStatusResolved, TargetType: domain.TargetTypeDeck, TargetOwnerName: "alice"},
		{ID: "t5", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeDeck, AssignedToID: &other},
		{ID: "t6", Status: domain.TicketStatusDismissed, TargetType: domain.TargetTypeComment},
		{ID: "t7", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeDeck, IsEscalated: true, AssignedToID: &me},
		{ID: "t8", Status: domain.TicketStatusReviewing, TargetType: domain.TargetTypeCard},
		{ID: "t9", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeUser},
		{ID: "t10", Status: domain.TicketStatusOpen, TargetType: domain.TargetTypeDeck, TargetOwnerName: "bob"},
	}
}

func TestFilterConjunction(t *testing.T) {
	all := sampleTickets()
	page := listview.SelectPage(all, listview.FilterState{
		Status:     domain.TicketStatusOpen,
		TargetType: domain.TargetTypeDeck,
	}, 1, 5)

	require.NotEmpty(t, page.Visible)
	for _, ticket := range page.Visible {
		require.Equal(t, domain.TicketStatusOpen, ticket.Status)
		require.Equal(t, domain.TargetTypeDeck, ticket.TargetType)
	}
	require.LessOrEqual(t, len(page.Visible), 5)
}

func TestFilterToggles(t *testing.T) {
	all := sampleTickets()

	escalated := listview.SelectPage(all, listview.FilterState{EscalatedOnly: true}, 1, 20)
	require.Len(t, escalated.Visible, 2)
	for _, ticket := range escalated.Visible {
		require.True(t, ticket.IsEscalated)
	}

	mine := listview.SelectPage(all, listview.FilterState{AssigneeID: "mod-1"}, 1, 20)
	require.Len(t, mine.Visible, 2)
	for _, ticket := range mine.Visible {
		require.Equal(t, "mod-1", *ticket.AssignedToID)
	}

	owner := listview.SelectPage(all, listview.FilterState{OwnerName: "alice"}, 1, 20)
	require.Len(t, owner.Visible, 2)

	// Conjunction of toggles narrows further.
	both := listview.SelectPage(all, listview.FilterState{EscalatedOnly: true, AssigneeID: "mod-1"}, 1, 20)
	require.Len(t, both.Visible, 1)
	require.Equal(t, "t7", both.Visible[0].ID)
}

func TestPaginationBounds(t *testing.T) {
	all := sampleTickets()

	page := listview.SelectPage(all, listview.FilterState{}, 1, 3)
	require.Equal(t, 4, page.TotalPages) // ceil(10/3)
	require.Len(t, page.Visible, 3)

	last := listview.SelectPage(all, listview.FilterState{}, 4, 3)
	require.Len(t, last.Visible, 1)

	beyond := listview.SelectPage(all, listview.FilterState{}, 5, 3)
	require.Empty(t, beyond.Visible)
	require.Equal(t, 4, beyond.TotalPages)

	empty := listview.SelectPage(nil, listview.FilterState{}, 1, 3)
	require.Empty(t, empty.Visible)
	require.Equal(t, 1, empty.TotalPages)
}

func TestSelectPageEndToEnd(t *testing.T) {
	all := []domain.Ticket{
		{ID: "t1", Status: domain.TicketStatusOpen},
		{ID: "t2", Status: domain.TicketStatusReviewing},
		{ID: "t3", Status: domain.TicketStatusResolved},
	}

	first := listview.SelectPage(all, listview.FilterState{}, 1, 2)
	require.Len(t, first.Visible, 2)
	require.Equal(t, 2, first.TotalPages)

	second := listview.SelectPage(all, listview.FilterState{}, 2, 2)
	require.Len(t, second.Visible, 1)
	require.Equal(t, "t3", second.Visible[0].ID)
}

func TestSelectPageDoesNotMutateInput(t *testing.T) {
	all := sampleTickets()
	before := make([]domain.Ticket, len(all))
	copy(before, all)

	_ = listview.SelectPage(all, listview.FilterState{Status: domain.TicketStatusOpen}, 1, 2)

	require.Equal(t, before, all)
}
