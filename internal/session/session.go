// Package session holds per-moderator console state. It replaces the web
// client's global singleton store with explicit state objects owned by a
// Manager and injected into services; all mutation goes through named,
// mutex-guarded methods and accessors hand out copies, so no caller can
// reach shared state in place.
package session

import (
	"sync"
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/listview"
)

// Session is the state for one authenticated moderator: their upstream
// credentials, the record lists being reconciled, the last applied list
// filter, and the "currently viewing" pointers used for navigation.
type Session struct {
	ID        string
	Token     string
	User      domain.User
	ExpiresAt time.Time

	mu          sync.RWMutex
	tickets     []domain.Ticket
	flagRecords []domain.FlagRecord
	lastFilter  listview.FilterState
	hasFilter   bool
	viewing     Viewing
}

// Viewing tracks cross-screen navigation pointers.
type Viewing struct {
	TicketID string
	DeckID   string
}

// Tickets returns a copy of the loaded ticket list.
func (s *Session) Tickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// SetTickets replaces the loaded ticket list.
func (s *Session) SetTickets(tickets []domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = tickets
}

// ReplaceTicket swaps the ticket with the same ID for the given value;
// tickets not present are ignored.
func (s *Session) ReplaceTicket(ticket domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == ticket.ID {
			s.tickets[i] = ticket
			return
		}
	}
}

// FlagRecords returns a copy of the beta-task records.
func (s *Session) FlagRecords() []domain.FlagRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FlagRecord, len(s.flagRecords))
	copy(out, s.flagRecords)
	return out
}

// SetFlagRecords replaces the beta-task records.
func (s *Session) SetFlagRecords(records []domain.FlagRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flagRecords = records
}

// SwapFilter stores the filter state and reports whether it differs from
// the previous one. The list handler resets to page 1 when it changed.
func (s *Session) SwapFilter(f listview.FilterState) (changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed = s.hasFilter && s.lastFilter != f
	s.lastFilter = f
	s.hasFilter = true
	return changed
}

// SetViewing updates the navigation pointers.
func (s *Session) SetViewing(v Viewing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewing = v
}

// CurrentViewing returns the navigation pointers.
func (s *Session) CurrentViewing() Viewing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewing
}
