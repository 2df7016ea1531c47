package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/api/dto"
	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/service"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// TasksHandler manages beta-task record endpoints.
type TasksHandler struct {
	service *service.BetaTaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.BetaTaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// ListRecords GET /beta/task-records.
func (h *TasksHandler) ListRecords(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	records, err := h.service.Records(c.UserContext(), sess, c.Query("refresh") == "true")
	if err != nil {
		return err
	}
	items := make([]dto.TaskRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, taskRecordResponse(r))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PUT /beta/tasks/:id/status.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	record, err := h.service.SetTaskStatus(c.UserContext(), sess, c.Params("id"), req.Status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": taskRecordResponse(record)})
}

func taskRecordResponse(r domain.FlagRecord) dto.TaskRecordResponse {
	return dto.TaskRecordResponse{
		ID:          r.ID,
		TaskID:      r.TaskID,
		Status:      r.Status,
		Notes:       r.Notes,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
	}
}
