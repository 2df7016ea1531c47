// Package timeline builds the merged activity feed for a ticket from its
// comment thread and its action audit log.
package timeline

import (
	"sort"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// Merge combines a ticket's comments and actions into a single feed ordered
// by timestamp, ascending. The merge is pure: inputs are never modified and
// identical inputs produce identical output. The sort is stable; at equal
// timestamps comments precede actions and each list keeps its input order.
// Items with a zero timestamp (the decode policy for malformed upstream
// values) sort first rather than being dropped.
func Merge(comments []domain.TicketComment, actions []domain.TicketAction) []domain.TimelineItem {
	items := make([]domain.TimelineItem, 0, len(comments)+len(actions))
	for i := range comments {
		c := comments[i]
		items = append(items, domain.TimelineItem{
			ID:        c.ID,
			Type:      domain.TimelineComment,
			Timestamp: c.CreatedAt,
			Comment:   &c,
		})
	}
	for i := range actions {
		a := actions[i]
		items = append(items, domain.TimelineItem{
			ID:        a.ID,
			Type:      domain.TimelineAction,
			Timestamp: a.Timestamp,
			Action:    &a,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items
}
