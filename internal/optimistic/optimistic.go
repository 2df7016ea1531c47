// Package optimistic provides the shared apply/commit/revert helper behind
// every screen that updates a record list before the backend confirms the
// change (beta tasks, flags, ticket status).
package optimistic

import "context"

// Phase marks a point in the optimistic update lifecycle.
type Phase int

const (
	// PhaseApplied fires after the local state shows the new value.
	PhaseApplied Phase = iota
	// PhaseConfirmed fires after the backend accepted the change.
	PhaseConfirmed
	// PhaseReverted fires after a failed commit restored the prior state.
	PhaseReverted
)

// String returns the phase name for logging and notifications.
func (p Phase) String() string {
	switch p {
	case PhaseApplied:
		return "applied"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Mutation captures a computed list edit together with the snapshot needed
// to undo it exactly.
type Mutation[R any] struct {
	// Next is the record list with the edit applied.
	Next []R
	// Updated is the record after the edit.
	Updated R
	// Created reports whether the record was appended rather than replaced.
	Created bool

	prior []R
}

// Apply computes the next record list: the first record matched by match is
// replaced with mutate's result; when nothing matches, create() is appended.
// The input slice is never modified, untouched elements keep their identity
// and position, and the returned Mutation remembers the prior list for
// Revert.
func Apply[R any](records []R, match func(R) bool, mutate func(R) R, create func() R) Mutation[R] {
	next := make([]R, len(records))
	copy(next, records)

	for i := range next {
		if match(next[i]) {
			updated := mutate(next[i])
			next[i] = updated
			return Mutation[R]{Next: next, Updated: updated, prior: records}
		}
	}

	created := create()
	next = append(next, created)
	return Mutation[R]{Next: next, Updated: created, Created: true, prior: records}
}

// Revert returns the exact pre-mutation record list.
func (m Mutation[R]) Revert() []R {
	return m.prior
}

// Do runs the full optimistic flow: publish the mutated list through set,
// attempt the remote commit, and restore the prior list when the commit
// fails. observe, when non-nil, is called at each phase transition so the
// caller can surface notifications. The commit error is returned untouched.
func Do[R any](ctx context.Context, m Mutation[R], set func([]R), commit func(context.Context) error, observe func(Phase)) error {
	set(m.Next)
	if observe != nil {
		observe(PhaseApplied)
	}
	if err := commit(ctx); err != nil {
		set(m.Revert())
		if observe != nil {
			observe(PhaseReverted)
		}
		return err
	}
	if observe != nil {
		observe(PhaseConfirmed)
	}
	return nil
}
