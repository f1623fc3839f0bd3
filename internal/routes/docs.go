package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/AthleteEngineBack/internal/config"
)

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var apiEndpoints = []endpointDoc{
	{"POST", "/api/v1/athletes", "Create an athlete"},
	{"GET", "/api/v1/athletes/:id", "Fetch an athlete"},
	{"PATCH", "/api/v1/athletes/:id/active", "Activate or deactivate an athlete"},
	{"POST", "/api/v1/athletes/:id/sessions", "Log a training session"},
	{"GET", "/api/v1/athletes/:id/sessions", "Recent training sessions"},
	{"GET", "/api/v1/athletes/:id/load", "Latest training load sample"},
	{"GET", "/api/v1/athletes/:id/load/history", "Load samples over the last N days"},
	{"POST", "/api/v1/engine/threshold-estimate", "Estimate threshold velocity from timed trials"},
	{"POST", "/api/v1/engine/race-recommendation", "Race acceptance recommendation"},
	{"POST", "/api/v1/engine/action-confidence", "Confidence score for a proposed agent action"},
	{"POST", "/api/internal/jobs/load-monitor", "Manually trigger the nightly load batch (bearer secret)"},
	{"GET", "/api/v1/ws/alerts", "Websocket stream of high-risk load alerts"},
}

// registerDocsRoutes exposes a machine-readable endpoint inventory in
// development only.
func registerDocsRoutes(app *fiber.App, cfg *config.Config) {
	if !cfg.DocsEnabled() {
		return
	}

	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":   "AthleteEngineBack",
			"endpoints": apiEndpoints,
		})
	})
}
