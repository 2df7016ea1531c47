package optimistic_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashy-app/moderation-console/internal/optimistic"
)

type record struct {
	ID     string
	Status string
	Notes  string
}

func matchID(id string) func(record) bool {
	return func(r record) bool { return r.ID == id }
}

func TestApplyReplacesExistingRecord(t *testing.T) {
	records := []record{
		{ID: "a", Status: "not_tested"},
		{ID: "b", Status: "works"},
	}

	m := optimistic.Apply(records, matchID("a"),
		func(r record) record { r.Status = "broken"; r.Notes = "n"; return r },
		func() record { t.Fatal("create must not run"); return record{} })

	require.False(t, m.Created)
	require.Len(t, m.Next, 2)
	require.Equal(t, "broken", m.Next[0].Status)
	require.Equal(t, "n", m.Next[0].Notes)
	// Untouched elements keep position and value.
	require.Equal(t, records[1], m.Next[1])
	// Input list is unmodified.
	require.Equal(t, "not_tested", records[0].Status)
}

func TestApplyAppendsWhenAbsent(t *testing.T) {
	m := optimistic.Apply([]record{}, matchID("x"),
		func(r record) record { return r },
		func() record { return record{ID: "x", Status: "works"} })

	require.True(t, m.Created)
	require.Len(t, m.Next, 1)
	require.Equal(t, "works", m.Next[0].Status)
	require.Empty(t, m.Revert())
}

func TestDoConfirm(t *testing.T) {
	var state []record
	set := func(r []record) { state = r }

	m := optimistic.Apply([]record{}, matchID("x"),
		func(r record) record { return r },
		func() record { return record{ID: "x", Status: "works"} })

	var phases []optimistic.Phase
	err := optimistic.Do(context.Background(), m, set,
		func(context.Context) error { return nil },
		func(p optimistic.Phase) { phases = append(phases, p) })

	require.NoError(t, err)
	require.Len(t, state, 1)
	require.Equal(t, "works", state[0].Status)
	require.Equal(t, []optimistic.Phase{optimistic.PhaseApplied, optimistic.PhaseConfirmed}, phases)
}

func TestDoRevertsOnFailedCommit(t *testing.T) {
	original := []record{{ID: "x", Status: "not_tested"}}
	state := original
	set := func(r []record) { state = r }

	m := optimistic.Apply(original, matchID("x"),
		func(r record) record { r.Status = "broken"; r.Notes = "n"; return r },
		func() record { return record{} })

	require.Equal(t, "broken", m.Next[0].Status)

	commitErr := errors.New("backend rejected")
	var phases []optimistic.Phase
	err := optimistic.Do(context.Background(), m, set,
		func(context.Context) error { return commitErr },
		func(p optimistic.Phase) {
			phases = append(phases, p)
			if p == optimistic.PhaseApplied {
				// The optimistic value is visible before the commit resolves.
				require.Equal(t, "broken", state[0].Status)
			}
		})

	require.ErrorIs(t, err, commitErr)
	// Exact reversion to the prior value, not just "some previous state".
	require.Equal(t, original, state)
	require.Equal(t, []optimistic.Phase{optimistic.PhaseApplied, optimistic.PhaseReverted}, phases)
}

func TestDoRevertRemovesCreatedRecord(t *testing.T) {
	var state []record
	set := func(r []record) { state = r }

	m := optimistic.Apply([]record{}, matchID("x"),
		func(r record) record { return r },
		func() record { return record{ID: "x", Status: "works"} })

	err := optimistic.Do(context.Background(), m, set,
		func(context.Context) error { return errors.New("nope") }, nil)

	require.Error(t, err)
	require.Empty(t, state)
}
