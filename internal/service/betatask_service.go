package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/events"
	"github.com/flashy-app/moderation-console/internal/optimistic"
	"github.com/flashy-app/moderation-console/internal/session"
	"github.com/flashy-app/moderation-console/internal/upstream"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// BetaTaskService tracks a tester's task records through the optimistic
// update flow: a record is created on first interaction or updated in
// place, shown immediately, and rolled back if the backend rejects it.
type BetaTaskService struct {
	backend    Backend
	dispatcher events.Dispatcher
}

// NewBetaTaskService constructs the service.
func NewBetaTaskService(backend Backend, dispatcher events.Dispatcher) *BetaTaskService {
	return &BetaTaskService{backend: backend, dispatcher: dispatcher}
}

// Records returns the session's task records, loading them from the
// backend when the session has none yet or refresh is set.
func (s *BetaTaskService) Records(ctx context.Context, sess *session.Session, refresh bool) ([]domain.FlagRecord, error) {
	records := sess.FlagRecords()
	if len(records) > 0 && !refresh {
		return records, nil
	}
	fetched, err := s.backend.GetBetaTaskRecords(ctx, sess.Token)
	if err != nil {
		return nil, mapUpstream(err)
	}
	sess.SetFlagRecords(fetched)
	return fetched, nil
}

// SetTaskStatus records a test result for the task. The session state shows
// the new status synchronously; the backend confirmation runs afterwards
// and a rejection restores the exact prior record list, removing a record
// that was only just created. Completed and CompletedAt derive from whether
// the status is terminal.
func (s *BetaTaskService) SetTaskStatus(ctx context.Context, sess *session.Session, taskID string, status domain.TaskStatus, notes string) (domain.FlagRecord, error) {
	switch status {
	case domain.TaskStatusNotTested, domain.TaskStatusWorks, domain.TaskStatusBroken:
	default:
		return domain.FlagRecord{}, apperrors.NewValidationError("unknown task status", map[string]any{"status": status})
	}

	records := sess.FlagRecords()
	oldStatus := domain.TaskStatusNotTested
	for _, r := range records {
		if r.TaskID == taskID {
			oldStatus = r.Status
			break
		}
	}

	now := time.Now()
	stamp := func(r domain.FlagRecord) domain.FlagRecord {
		r.Status = status
		r.Notes = notes
		r.Completed = status.IsTerminal()
		if r.Completed {
			t := now
			r.CompletedAt = &t
		} else {
			r.CompletedAt = nil
		}
		return r
	}

	m := optimistic.Apply(records,
		func(r domain.FlagRecord) bool { return r.TaskID == taskID },
		stamp,
		func() domain.FlagRecord {
			return stamp(domain.FlagRecord{ID: uuid.NewString(), TaskID: taskID})
		})

	var confirmed domain.FlagRecord
	commit := func(ctx context.Context) error {
		server, err := s.backend.UpdateTaskStatus(ctx, sess.Token, taskID, upstream.TaskStatusUpdate{
			Status: status,
			Notes:  notes,
		})
		if err != nil {
			return mapUpstream(err)
		}
		confirmed = server
		// Swap the locally stamped record for server truth.
		next := sess.FlagRecords()
		for i := range next {
			if next[i].TaskID == taskID {
				next[i] = server
				break
			}
		}
		sess.SetFlagRecords(next)
		return nil
	}

	err := optimistic.Do(ctx, m, sess.SetFlagRecords, commit, s.observer(ctx, sess, events.TaskStatusFields(taskID, oldStatus, status)))
	if err != nil {
		return domain.FlagRecord{}, err
	}
	return confirmed, nil
}

func (s *BetaTaskService) observer(ctx context.Context, sess *session.Session, payload events.StatusTransitionPayload) func(optimistic.Phase) {
	return func(p optimistic.Phase) {
		if s.dispatcher == nil {
			return
		}
		var eventType events.EventType
		switch p {
		case optimistic.PhaseApplied:
			eventType = events.EventStatusApplied
		case optimistic.PhaseConfirmed:
			eventType = events.EventStatusConfirmed
		case optimistic.PhaseReverted:
			eventType = events.EventStatusReverted
		default:
			return
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      eventType,
			ActorID:   sess.User.ID,
			Timestamp: time.Now(),
			Payload:   payload,
		})
	}
}
