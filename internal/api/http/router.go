package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/equitask/equitask-api/internal/api/http/handlers"
	"github.com/equitask/equitask-api/internal/auth"
	"github.com/equitask/equitask-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tasks          *handlers.TasksHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := cfg.AuthMiddleware.Handle

	tasks := app.Group("/tasks", protected)
	tasks.Get("/", cfg.Tasks.ListTasks)
	tasks.Post("/", cfg.Tasks.CreateTask)
	tasks.Post("/suggest", cfg.Tasks.Suggest)
	tasks.Put("/:id", cfg.Tasks.UpdateTask)
	tasks.Delete("/:id", cfg.Tasks.DeleteTask)
	tasks.Patch("/:id/status", cfg.Tasks.UpdateStatus)

	users := app.Group("/users", protected)
	users.Get("/", cfg.Users.ListUsers)
	users.Patch("/:id", cfg.Users.UpdateUser)

	notifications := app.Group("/notifications", protected)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Patch("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.Delete)

	analytics := app.Group("/analytics", protected)
	analytics.Get("/weekly-report", cfg.Analytics.WeeklyReport)
}
