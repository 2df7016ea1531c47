package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/events"
	"github.com/flashy-app/moderation-console/internal/service"
	"github.com/flashy-app/moderation-console/internal/upstream"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

func TestSetTaskStatusCreatesRecord(t *testing.T) {
	sess := newSession()

	server := domain.FlagRecord{
		ID:     "rec-1",
		TaskID: "task-7",
		Status: domain.TaskStatusWorks,
		Notes:  "export worked",
	}
	var appliedRecord domain.FlagRecord
	backend := &fakeBackend{
		updateTaskStatus: func(_ context.Context, token, taskID string, update upstream.TaskStatusUpdate) (domain.FlagRecord, error) {
			require.Equal(t, "upstream-token", token)
			require.Equal(t, "task-7", taskID)
			require.Equal(t, domain.TaskStatusWorks, update.Status)
			// The locally created record is already in the session while
			// the backend is still deciding.
			records := sess.FlagRecords()
			require.Len(t, records, 1)
			appliedRecord = records[0]
			return server, nil
		},
	}

	dispatcher := events.NewInMemoryDispatcher()
	recorder := newEventRecorder(dispatcher)
	svc := service.NewBetaTaskService(backend, dispatcher)

	got, err := svc.SetTaskStatus(context.Background(), sess, "task-7", domain.TaskStatusWorks, "export worked")
	require.NoError(t, err)
	require.Equal(t, server, got)

	require.NotEmpty(t, appliedRecord.ID)
	require.Equal(t, "task-7", appliedRecord.TaskID)
	require.Equal(t, domain.TaskStatusWorks, appliedRecord.Status)
	require.True(t, appliedRecord.Completed)
	require.NotNil(t, appliedRecord.CompletedAt)

	// Server truth replaces the locally stamped record.
	records := sess.FlagRecords()
	require.Len(t, records, 1)
	require.Equal(t, server, records[0])

	require.Equal(t, []events.EventType{events.EventStatusApplied, events.EventStatusConfirmed}, recorder.types())
}

func TestSetTaskStatusUpdatesExistingRecord(t *testing.T) {
	sess := newSession()
	sess.SetFlagRecords([]domain.FlagRecord{
		{ID: "rec-1", TaskID: "task-7", Status: domain.TaskStatusBroken, Notes: "crashed", Completed: true},
		{ID: "rec-2", TaskID: "task-8", Status: domain.TaskStatusNotTested},
	})

	backend := &fakeBackend{
		updateTaskStatus: func(_ context.Context, _, taskID string, update upstream.TaskStatusUpdate) (domain.FlagRecord, error) {
			return domain.FlagRecord{ID: "rec-1", TaskID: taskID, Status: update.Status, Notes: update.Notes}, nil
		},
	}
	svc := service.NewBetaTaskService(backend, events.NewInMemoryDispatcher())

	got, err := svc.SetTaskStatus(context.Background(), sess, "task-7", domain.TaskStatusNotTested, "retesting")
	require.NoError(t, err)
	require.Equal(t, "rec-1", got.ID)

	records := sess.FlagRecords()
	require.Len(t, records, 2)
	require.Equal(t, domain.TaskStatusNotTested, records[0].Status)
	// The other record is untouched.
	require.Equal(t, "rec-2", records[1].ID)
	require.Equal(t, domain.TaskStatusNotTested, records[1].Status)
}

func TestSetTaskStatusRevertRemovesCreatedRecord(t *testing.T) {
	sess := newSession()

	backend := &fakeBackend{
		updateTaskStatus: func(_ context.Context, _, _ string, _ upstream.TaskStatusUpdate) (domain.FlagRecord, error) {
			return domain.FlagRecord{}, &upstream.APIError{Status: 403, Code: "FORBIDDEN", Message: "not a tester"}
		},
	}
	dispatcher := events.NewInMemoryDispatcher()
	recorder := newEventRecorder(dispatcher)
	svc := service.NewBetaTaskService(backend, dispatcher)

	_, err := svc.SetTaskStatus(context.Background(), sess, "task-7", domain.TaskStatusBroken, "sync loses cards")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, 403, domainErr.HTTPStatus)

	// The record created for the optimistic apply is gone again.
	require.Empty(t, sess.FlagRecords())
	require.Equal(t, []events.EventType{events.EventStatusApplied, events.EventStatusReverted}, recorder.types())
}

func TestSetTaskStatusRevertRestoresPriorRecord(t *testing.T) {
	original := []domain.FlagRecord{
		{ID: "rec-1", TaskID: "task-7", Status: domain.TaskStatusWorks, Notes: "fine", Completed: true},
	}
	sess := newSession()
	sess.SetFlagRecords(original)

	backend := &fakeBackend{
		updateTaskStatus: func(_ context.Context, _, _ string, _ upstream.TaskStatusUpdate) (domain.FlagRecord, error) {
			return domain.FlagRecord{}, &upstream.APIError{Status: 500, Code: "INTERNAL", Message: "boom"}
		},
	}
	svc := service.NewBetaTaskService(backend, events.NewInMemoryDispatcher())

	_, err := svc.SetTaskStatus(context.Background(), sess, "task-7", domain.TaskStatusBroken, "regressed")
	require.Error(t, err)
	require.Equal(t, original, sess.FlagRecords())
}

func TestSetTaskStatusRejectsUnknownStatus(t *testing.T) {
	svc := service.NewBetaTaskService(&fakeBackend{}, events.NewInMemoryDispatcher())

	_, err := svc.SetTaskStatus(context.Background(), newSession(), "task-7", domain.TaskStatus("flaky"), "")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestRecordsLazyLoad(t *testing.T) {
	sess := newSession()
	fetches := 0
	backend := &fakeBackend{
		getBetaTaskRecords: func(_ context.Context, _ string) ([]domain.FlagRecord, error) {
			fetches++
			return []domain.FlagRecord{{ID: "rec-1", TaskID: "task-1", Status: domain.TaskStatusNotTested}}, nil
		},
	}
	svc := service.NewBetaTaskService(backend, events.NewInMemoryDispatcher())

	first, err := svc.Records(context.Background(), sess, false)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, fetches)

	// Second read serves the session copy.
	_, err = svc.Records(context.Background(), sess, false)
	require.NoError(t, err)
	require.Equal(t, 1, fetches)

	// refresh forces a refetch.
	_, err = svc.Records(context.Background(), sess, true)
	require.NoError(t, err)
	require.Equal(t, 2, fetches)
}
