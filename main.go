package main

import (
	"context"
	"log"
	"time"

	"academy/config"
	chatController "academy/controllers/chat"
	"academy/database"
	"academy/logger"
	"academy/routers"
	"academy/services"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	config.LoadConfig()
	if err := logger.Init(config.AppConfig.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database.ConnectDb()
	db := database.Database.Db

	svc := services.Init(db, config.AppConfig.SaltRound)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Seed(ctx, svc, config.AppConfig); err != nil {
		cancel()
		logger.Log.Fatalw("failed to seed database", "error", err)
	}
	cancel()

	digest, err := utils.InitializeStatsDigestScheduler(db, svc, config.AppConfig)
	if err != nil {
		logger.Log.Fatalw("failed to start stats digest", "error", err)
	}
	defer digest.Stop()

	if config.AppConfig.SendGridAPIKey != "" {
		utils.Notifier = utils.SendGridMailer{
			APIKey:   config.AppConfig.SendGridAPIKey,
			From:     config.AppConfig.DigestSender,
			FromName: "Oguz AI Academy",
		}
	}
	if config.AppConfig.OpenRouterAPIKey != "" {
		chatController.Client = utils.NewChatClient(config.AppConfig)
	}

	app := fiber.New()

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberLogger.New(fiberLogger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	routers.SetupRoutes(app)

	logger.Log.Infow("server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatalw("server stopped", "error", err)
	}
}
