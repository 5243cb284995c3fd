package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lablink/backend/internal/config"
	"github.com/lablink/backend/internal/http/handlers"
	"github.com/lablink/backend/internal/metrics"
	"github.com/lablink/backend/internal/middleware"
	"github.com/lablink/backend/internal/rbac"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	itemHandler *handlers.ItemHandler,
	requestHandler *handlers.RequestHandler,
	auditHandler *handlers.AuditHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(metrics.Middleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Get("/me", authHandler.GetMe)

	// Catalog
	protected.Get("/items", itemHandler.ListItems)
	protected.Get("/items/:id", itemHandler.GetItem)
	protected.Post("/items", middleware.RequirePermission(rbac.PermManageCatalog), itemHandler.CreateItem)
	protected.Put("/items/:id", middleware.RequirePermission(rbac.PermManageCatalog), itemHandler.UpdateItem)
	protected.Delete("/items/:id", middleware.RequirePermission(rbac.PermManageCatalog), itemHandler.DeleteItem)

	// Borrow requests
	protected.Post("/requests", middleware.RequirePermission(rbac.PermSubmitRequest), requestHandler.SubmitRequest)
	protected.Get("/requests", requestHandler.ListRequests)
	protected.Get("/requests/:id", requestHandler.GetRequest)
	protected.Post("/requests/:id/accept", middleware.RequirePermission(rbac.PermDecideRequest), requestHandler.AcceptRequest)
	protected.Post("/requests/:id/reject", middleware.RequirePermission(rbac.PermDecideRequest), requestHandler.RejectRequest)
	protected.Post("/requests/:id/close", middleware.RequirePermission(rbac.PermDecideRequest), requestHandler.CloseRequest)

	// Audit log
	protected.Get("/audit", middleware.RequirePermission(rbac.PermViewAudit), auditHandler.QueryAuditLog)
}
