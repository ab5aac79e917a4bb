package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docqa/internal/service"
)

// Routes bundles what RegisterRoutes needs. Metrics is nil when /metrics is disabled.
type Routes struct {
	Documents service.DocumentService
	Health    HealthChecker
	Metrics   prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, r Routes) {
	if r.Health.Documents == nil {
		r.Health.Documents = r.Documents
	}

	app.Get("/health", HealthCheck(r.Health))
	app.Get("/healthz", LivenessProbe())

	if r.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.Metrics, promhttp.HandlerOpts{})))
	}

	app.Post("/upload", UploadDocument(r.Documents))
	app.Post("/ask", AskQuestion(r.Documents))
}
