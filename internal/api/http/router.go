package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flashy-app/moderation-console/internal/api/http/handlers"
	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/exchange", cfg.Auth.Exchange)
	app.Post("/auth/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	moderation := app.Group("/moderation", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleModerator))
	moderation.Get("/tickets", cfg.Tickets.ListTickets)
	moderation.Get("/tickets/:id", cfg.Tickets.GetTicket)
	moderation.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	moderation.Post("/tickets/:id/claim", cfg.Tickets.SelfAssign)
	moderation.Post("/tickets/:id/escalate", cfg.Tickets.Escalate)
	moderation.Post("/tickets/:id/comments", cfg.Tickets.AddComment)

	admin := moderation.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Post("/tickets/:id/assign", cfg.Tickets.Assign)
	admin.Post("/tickets/:id/unassign", cfg.Tickets.Unassign)
	admin.Post("/users/:id/warn", cfg.Tickets.WarnUser)

	beta := app.Group("/beta", cfg.AuthMiddleware.Handle)
	beta.Get("/task-records", cfg.Tasks.ListRecords)
	beta.Put("/tasks/:id/status", cfg.Tasks.UpdateStatus)
}
