// Command seed loads demo accounts and catalog items for local development.
package main

import (
	"context"

	"github.com/lablink/backend/internal/auth"
	"github.com/lablink/backend/internal/config"
	"github.com/lablink/backend/internal/db"
	"github.com/lablink/backend/internal/models"
	"github.com/lablink/backend/internal/repositories"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	database := &db.DB{Pool: pool}
	userRepo := repositories.NewUserRepo(database)
	itemRepo := repositories.NewItemRepo(database)

	users := []struct {
		Username string
		Email    string
		Password string
		Role     string
	}{
		{"approver", "approver@lablink.edu", "approver123", models.RoleApprover},
		{"requester", "requester@lablink.edu", "requester123", models.RoleRequester},
		{"john_doe", "john.doe@lablink.edu", "requester123", models.RoleRequester},
		{"prof_wilson", "wilson@lablink.edu", "approver123", models.RoleApprover},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.Password, cfg.BcryptCost)
		if err != nil {
			log.Fatal("failed to hash password", zap.Error(err))
		}
		user := &models.User{Username: u.Username, Email: u.Email, PasswordHash: hash, Role: u.Role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Warn("skipping user", zap.String("username", u.Username), zap.Error(err))
			continue
		}
		log.Info("created user", zap.String("username", u.Username), zap.String("role", u.Role))
	}

	items := []models.Item{
		{Name: "Arduino Uno R3", Category: "Microcontroller", Quantity: 15, Location: "Rack A, Shelf 1"},
		{Name: "Arduino Nano", Category: "Microcontroller", Quantity: 20, Location: "Rack A, Shelf 2"},
		{Name: "DHT22 Temperature & Humidity Sensor", Category: "Sensor", Quantity: 25, Location: "Rack B, Shelf 1"},
		{Name: "HC-SR04 Ultrasonic Sensor", Category: "Sensor", Quantity: 30, Location: "Rack B, Shelf 1"},
		{Name: "ESP8266 WiFi Module", Category: "Module", Quantity: 22, Location: "Rack C, Shelf 1"},
		{Name: "HC-05 Bluetooth Module", Category: "Module", Quantity: 16, Location: "Rack C, Shelf 1"},
	}

	for i := range items {
		if err := itemRepo.Create(ctx, database.Pool, &items[i]); err != nil {
			log.Warn("skipping item", zap.String("name", items[i].Name), zap.Error(err))
			continue
		}
		log.Info("created item", zap.String("name", items[i].Name), zap.Int("quantity", items[i].Quantity))
	}
}
