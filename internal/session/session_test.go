package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/listview"
	"github.com/flashy-app/moderation-console/internal/session"
)

func TestTicketsReturnsCopy(t *testing.T) {
	sess := &session.Session{ID: "s1"}
	sess.SetTickets([]domain.Ticket{{ID: "t1", Status: domain.TicketStatusOpen}})

	first := sess.Tickets()
	first[0].Status = domain.TicketStatusResolved

	// Mutating the returned slice never leaks into the session.
	require.Equal(t, domain.TicketStatusOpen, sess.Tickets()[0].Status)
}

func TestReplaceTicket(t *testing.T) {
	sess := &session.Session{ID: "s1"}
	sess.SetTickets([]domain.Ticket{
		{ID: "t1", Status: domain.TicketStatusOpen},
		{ID: "t2", Status: domain.TicketStatusOpen},
	})

	sess.ReplaceTicket(domain.Ticket{ID: "t2", Status: domain.TicketStatusResolved})
	tickets := sess.Tickets()
	require.Equal(t, domain.TicketStatusOpen, tickets[0].Status)
	require.Equal(t, domain.TicketStatusResolved, tickets[1].Status)

	// Unknown tickets are ignored.
	sess.ReplaceTicket(domain.Ticket{ID: "t9", Status: domain.TicketStatusDismissed})
	require.Len(t, sess.Tickets(), 2)
}

func TestSwapFilterReportsChange(t *testing.T) {
	sess := &session.Session{ID: "s1"}

	// The first filter establishes state without signalling a change.
	require.False(t, sess.SwapFilter(listview.FilterState{}))
	require.False(t, sess.SwapFilter(listview.FilterState{}))

	require.True(t, sess.SwapFilter(listview.FilterState{Status: domain.TicketStatusOpen}))
	require.False(t, sess.SwapFilter(listview.FilterState{Status: domain.TicketStatusOpen}))
	require.True(t, sess.SwapFilter(listview.FilterState{Status: domain.TicketStatusOpen, EscalatedOnly: true}))
}

func TestViewingPointer(t *testing.T) {
	sess := &session.Session{ID: "s1"}
	require.Zero(t, sess.CurrentViewing())

	sess.SetViewing(session.Viewing{TicketID: "t1", DeckID: "d1"})
	require.Equal(t, session.Viewing{TicketID: "t1", DeckID: "d1"}, sess.CurrentViewing())
}

func TestManagerLifecycle(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	user := domain.User{ID: "mod-1", Role: domain.RoleModerator}

	sess := mgr.Create(user, "upstream-token")
	require.NotEmpty(t, sess.ID)
	require.Equal(t, user, sess.User)
	require.Equal(t, "upstream-token", sess.Token)

	got, ok := mgr.Get(sess.ID)
	require.True(t, ok)
	require.Same(t, sess, got)

	mgr.Delete(sess.ID)
	_, ok = mgr.Get(sess.ID)
	require.False(t, ok)
}

func TestManagerEvictsExpiredSessions(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	sess := mgr.Create(domain.User{ID: "mod-1"}, "tok")
	sess.ExpiresAt = time.Now().Add(-time.Minute)

	_, ok := mgr.Get(sess.ID)
	require.False(t, ok)
	// Evicted for good, not just hidden.
	_, ok = mgr.Get(sess.ID)
	require.False(t, ok)
}
