package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"smartsummary/internal/service"
	"smartsummary/internal/ui"
)

// Deps are the collaborators the HTTP routes need.
type Deps struct {
	DB         *sql.DB
	Page       *ui.Page
	Summaries  service.SummaryService
	Exports    service.ExportService
	PresignTTL time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/", Index(d.Page))

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/settings", GetSettings())
	api.Post("/summaries", CreateSummary(d.Summaries))
	api.Post("/exports", CreateExport(d.Exports))
	api.Get("/exports", ListExports(d.Exports))
	api.Get("/exports/:id", DownloadExport(d.Exports, d.PresignTTL))
	api.Delete("/exports/:id", DeleteExport(d.Exports))
}
