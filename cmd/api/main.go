package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/lablink/backend/internal/config"
	"github.com/lablink/backend/internal/db"
	apphttp "github.com/lablink/backend/internal/http"
	"github.com/lablink/backend/internal/http/handlers"
	"github.com/lablink/backend/internal/repositories"
	"github.com/lablink/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	database := &db.DB{Pool: pool}

	// Repositories
	userRepo := repositories.NewUserRepo(database)
	itemRepo := repositories.NewItemRepo(database)
	requestRepo := repositories.NewRequestRepo(database)
	auditRepo := repositories.NewAuditRepo(database)

	// Services
	catalogService := services.NewCatalogService(database, itemRepo, requestRepo, auditRepo, log)
	requestService := services.NewRequestService(database, requestRepo, itemRepo, auditRepo, log)
	auditService := services.NewAuditService(auditRepo, cfg, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	itemHandler := handlers.NewItemHandler(catalogService, log)
	requestHandler := handlers.NewRequestHandler(requestService, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, itemHandler, requestHandler, auditHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
