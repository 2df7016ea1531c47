package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// GetBetaTaskRecords fetches the caller's beta-task test records.
func (c *Client) GetBetaTaskRecords(ctx context.Context, token string) ([]domain.FlagRecord, error) {
	var wire struct {
		Data []flagRecordWire `json:"data"`
	}
	if err := c.get(ctx, token, "/api/beta/task-records", &wire); err != nil {
		return nil, err
	}
	records := make([]domain.FlagRecord, 0, len(wire.Data))
	for _, w := range wire.Data {
		records = append(records, w.toDomain())
	}
	return records, nil
}

// TaskStatusUpdate carries an UpdateTaskStatus request.
type TaskStatusUpdate struct {
	Status domain.TaskStatus `json:"status"`
	Notes  string            `json:"notes,omitempty"`
}

// UpdateTaskStatus submits a beta-task test result. The backend upserts:
// a record is created when the tester had none for the task.
func (c *Client) UpdateTaskStatus(ctx context.Context, token, taskID string, update TaskStatusUpdate) (domain.FlagRecord, error) {
	var wire struct {
		Data flagRecordWire `json:"data"`
	}
	path := fmt.Sprintf("/api/beta/tasks/%s/status", url.PathEscape(taskID))
	if err := c.put(ctx, token, path, update, &wire); err != nil {
		return domain.FlagRecord{}, err
	}
	return wire.Data.toDomain(), nil
}
