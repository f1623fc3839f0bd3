package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/AthleteEngineBack/internal/config"
	"github.com/saeid-a/AthleteEngineBack/internal/handlers"
	"github.com/saeid-a/AthleteEngineBack/internal/middleware"
	"github.com/saeid-a/AthleteEngineBack/internal/repository"
	"github.com/saeid-a/AthleteEngineBack/internal/services"
	alertws "github.com/saeid-a/AthleteEngineBack/internal/websocket"
)

// RegisterRoutes wires repositories, services and handlers onto the app and
// returns the load monitor so the scheduler in cmd/server can drive it.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) *services.LoadMonitor {
	athleteRepo := repository.NewAthleteRepository(db)
	sessionRepo := repository.NewTrainingSessionRepository(db)
	sampleRepo := repository.NewLoadSampleRepository(db)

	alertHub := alertws.NewHub()
	go alertHub.Run()

	loadMonitor := services.NewLoadMonitor(athleteRepo, sessionRepo, sampleRepo, alertHub)
	estimator := services.NewThresholdEstimator()
	scorer := services.NewConfidenceScorer()
	advisor := services.NewRaceAdvisor()

	athleteHandler := handlers.NewAthleteHandler(athleteRepo, sessionRepo, sampleRepo)
	thresholdHandler := handlers.NewThresholdHandler(estimator)
	decisionHandler := handlers.NewDecisionHandler(scorer, advisor)
	jobHandler := handlers.NewJobHandler(loadMonitor)

	api := app.Group("/api")

	jobs := api.Group("/internal/jobs", middleware.JobAuthRequired(cfg.JobSecret))
	jobs.Post("/load-monitor", jobHandler.TriggerLoadMonitor)

	v1 := api.Group("/v1")

	athletes := v1.Group("/athletes")
	athletes.Post("", athleteHandler.CreateAthlete)
	athletes.Get("/:id", athleteHandler.GetAthlete)
	athletes.Patch("/:id/active", athleteHandler.SetAthleteActive)
	athletes.Post("/:id/sessions", athleteHandler.LogSession)
	athletes.Get("/:id/sessions", athleteHandler.ListSessions)
	athletes.Get("/:id/load", athleteHandler.GetCurrentLoad)
	athletes.Get("/:id/load/history", athleteHandler.GetLoadHistory)

	engine := v1.Group("/engine")
	engine.Post("/threshold-estimate", thresholdHandler.Estimate)
	engine.Post("/race-recommendation", decisionHandler.RecommendRace)
	engine.Post("/action-confidence", decisionHandler.ScoreActionConfidence)

	v1.Use("/ws/alerts", upgradeRequired)
	v1.Get("/ws/alerts", websocket.New(func(conn *websocket.Conn) {
		client := alertws.NewClient(alertHub, conn)
		alertHub.Register(client)
		go client.WritePump()
		client.ReadPump()
	}))

	registerDocsRoutes(app, cfg)

	return loadMonitor
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
