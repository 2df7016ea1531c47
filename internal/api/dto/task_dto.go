package dto

import (
	"time"

	"github.com/flashy-app/moderation-console/internal/domain"
)

// TaskRecordResponse is one beta-task test record.
type TaskRecordResponse struct {
	ID          string            `json:"id"`
	TaskID      string            `json:"task_id"`
	Status      domain.TaskStatus `json:"status"`
	Notes       string            `json:"notes"`
	Completed   bool              `json:"completed"`
	CompletedAt *time.Time        `json:"completed_at"`
}

// UpdateTaskStatusRequest payload.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
	Notes  string            `json:"notes"`
}

// ExchangeRequest trades an upstream access token for a console session.
type ExchangeRequest struct {
	AccessToken string `json:"access_token"`
}

// ExchangeResponse carries the console session token.
type ExchangeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Role      string    `json:"role"`
}
