// Package listview derives the visible slice of the ticket list from the
// full record set, the active filters, and the requested page.
package listview

import "github.com/flashy-app/moderation-console/internal/domain"

// DefaultPageSize matches the list views' page length.
const DefaultPageSize = 20

// FilterState is a conjunction of independent predicates over the ticket
// list. Zero values mean "all" for the equality filters and "off" for the
// toggles; every active predicate must match.
type FilterState struct {
	Status        domain.TicketStatus
	TargetType    domain.TargetType
	EscalatedOnly bool
	AssigneeID    string
	OwnerName     string
}

// Matches reports whether the ticket passes every active predicate.
func (f FilterState) Matches(t domain.Ticket) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.TargetType != "" && t.TargetType != f.TargetType {
		return false
	}
	if f.EscalatedOnly && !t.IsEscalated {
		return false
	}
	if f.AssigneeID != "" {
		if t.AssignedToID == nil || *t.AssignedToID != f.AssigneeID {
			return false
		}
	}
	if f.OwnerName != "" && t.TargetOwnerName != f.OwnerName {
		return false
	}
	return true
}

// Page is the visible slice of a filtered ticket list.
type Page struct {
	Visible    []domain.Ticket
	TotalPages int
}

// SelectPage filters all through f, then slices the result into fixed-size
// pages and returns page number page (1-based). The input is never
// modified. A page beyond TotalPages yields an empty Visible slice; callers
// are expected to reset page to 1 whenever the filters change, otherwise a
// stale out-of-range page renders empty.
func SelectPage(all []domain.Ticket, f FilterState, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	filtered := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if f.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return Page{Visible: []domain.Ticket{}, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return Page{Visible: filtered[start:end], TotalPages: totalPages}
}
