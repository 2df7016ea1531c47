package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/flashy-app/moderation-console/internal/api/http"
	"github.com/flashy-app/moderation-console/internal/api/http/handlers"
	"github.com/flashy-app/moderation-console/internal/auth"
	"github.com/flashy-app/moderation-console/internal/cache"
	"github.com/flashy-app/moderation-console/internal/config"
	"github.com/flashy-app/moderation-console/internal/events"
	"github.com/flashy-app/moderation-console/internal/observability"
	"github.com/flashy-app/moderation-console/internal/service"
	"github.com/flashy-app/moderation-console/internal/session"
	"github.com/flashy-app/moderation-console/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	backend := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), cfg.Upstream.MaxRetries)
	ticketCache := cache.New(cfg.Redis, logger)
	defer ticketCache.Close()

	sessions := session.NewManager(cfg.Auth.SessionTTL())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	authMiddleware := auth.NewMiddleware(tokens, sessions)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	authService := service.NewAuthService(backend, sessions, tokens)
	moderationService := service.NewModerationService(service.ModerationDependencies{
		Backend:     backend,
		TicketCache: ticketCache,
		Dispatcher:  dispatcher,
	})
	taskService := service.NewBetaTaskService(backend, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(metrics, cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(moderationService),
		Tasks:          handlers.NewTasksHandler(taskService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
