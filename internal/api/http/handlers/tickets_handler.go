package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/api/dto"
	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/domain"
	"github.com/flashy-app/moderation-console/internal/listview"
	"github.com/flashy-app/moderation-console/internal/service"
	apperrors "github.com/flashy-app/moderation-console/pkg/errorutil"
)

// TicketsHandler manages moderation ticket endpoints.
type TicketsHandler struct {
	service *service.ModerationService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(moderationService *service.ModerationService) *TicketsHandler {
	return &TicketsHandler{service: moderationService}
}

// ListTickets GET /moderation/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filters := parseFilters(c, sess.User.ID)
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), listview.DefaultPageSize)
	refresh := c.Query("refresh") == "true"

	result, effectivePage, err := h.service.ListTickets(c.UserContext(), sess, filters, page, pageSize, refresh)
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(result.Visible))
	for i := range result.Visible {
		items = append(items, ticketSummary(result.Visible[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Items:      items,
		Page:       effectivePage,
		TotalPages: result.TotalPages,
	}})
}

// GetTicket GET /moderation/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	detail, err := h.service.LoadTicketDetail(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetailResponse(detail)})
}

// UpdateStatus PATCH /moderation/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), sess, c.Params("id"), req.Status, req.ResolutionNote, req.ResolutionReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Assign POST /moderation/tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Assign(c.UserContext(), sess, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Unassign POST /moderation/tickets/:id/unassign.
func (h *TicketsHandler) Unassign(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.service.Unassign(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// SelfAssign POST /moderation/tickets/:id/claim.
func (h *TicketsHandler) SelfAssign(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.service.Assign(c.UserContext(), sess, c.Params("id"), sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// Escalate POST /moderation/tickets/:id/escalate.
func (h *TicketsHandler) Escalate(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Escalate(c.UserContext(), sess, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// AddComment POST /moderation/tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	comment, err := h.service.AddComment(c.UserContext(), sess, c.Params("id"), req.Content, req.Mentions)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": fiber.Map{
		"id":         comment.ID,
		"ticket_id":  comment.TicketID,
		"content":    comment.Content,
		"mentions":   comment.Mentions,
		"created_at": comment.CreatedAt,
	}})
}

// WarnUser POST /moderation/users/:id/warn.
func (h *TicketsHandler) WarnUser(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.WarnRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.Warn(c.UserContext(), sess, c.Params("id"), req.Reason, req.Deadline); err != nil {
		return err
	}
	return c.SendStatus(204)
}

func parseFilters(c *fiber.Ctx, selfID string) listview.FilterState {
	filters := listview.FilterState{}
	if status := c.Query("status"); status != "" && status != "all" {
		filters.Status = domain.TicketStatus(status)
	}
	if targetType := c.Query("type"); targetType != "" && targetType != "all" {
		filters.TargetType = domain.TargetType(targetType)
	}
	if c.Query("escalated") == "true" {
		filters.EscalatedOnly = true
	}
	if c.Query("mine") == "true" {
		filters.AssigneeID = selfID
	}
	if owner := c.Query("owner"); owner != "" {
		filters.OwnerName = owner
	}
	return filters
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:              ticket.ID,
		TargetType:      ticket.TargetType,
		TargetID:        ticket.TargetID,
		TargetOwnerName: ticket.TargetOwnerName,
		Status:          ticket.Status,
		AssignedToID:    ticket.AssignedToID,
		AssignedToName:  ticket.AssignedToName,
		IsEscalated:     ticket.IsEscalated,
		Reason:          ticket.Reason,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

func ticketDetailResponse(detail *service.TicketDetail) dto.TicketDetailResponse {
	items := make([]dto.TimelineItemResp, 0, len(detail.Timeline))
	for _, item := range detail.Timeline {
		resp := dto.TimelineItemResp{
			ID:        item.ID,
			Type:      string(item.Type),
			Timestamp: item.Timestamp,
		}
		switch {
		case item.Comment != nil:
			resp.Comment = &dto.CommentResp{
				UserID:   item.Comment.UserID,
				UserName: item.Comment.UserName,
				Content:  item.Comment.Content,
				Mentions: item.Comment.Mentions,
			}
		case item.Action != nil:
			resp.Action = &dto.ActionResp{
				ActionType:    item.Action.Type,
				PerformedBy:   item.Action.PerformedBy,
				PerformedByID: item.Action.PerformedByID,
			}
			resp.Description = item.Action.Describe()
		}
		items = append(items, resp)
	}
	return dto.TicketDetailResponse{
		Ticket:         ticketSummary(detail.Ticket),
		ResolutionNote: detail.Ticket.ResolutionNote,
		Timeline:       items,
	}
}
