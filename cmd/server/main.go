package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/saeid-a/AthleteEngineBack/internal/config"
	"github.com/saeid-a/AthleteEngineBack/internal/database"
	"github.com/saeid-a/AthleteEngineBack/internal/routes"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	loadMonitor := routes.RegisterRoutes(app, cfg, database.DB)

	// 4. Nightly load monitor schedule (UTC)
	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc(cfg.JobSchedule, func() {
		result, err := loadMonitor.RunNightlyUpdate(context.Background(), time.Now().UTC())
		if err != nil {
			log.Printf("load monitor schedule: %v", err)
			return
		}
		log.Printf(
			"load monitor schedule: processed=%d updated=%d errors=%d day=%s",
			result.Processed, result.Updated, result.Errors, result.Timestamp,
		)
	}); err != nil {
		log.Fatalf("Invalid JOB_SCHEDULE %q: %v", cfg.JobSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 5. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
