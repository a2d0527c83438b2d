package restapi

import (
	"net/http"

	"github.com/alexai/greeting-cards/config"
	"github.com/alexai/greeting-cards/internal/controller/restapi/edge"
	v1 "github.com/alexai/greeting-cards/internal/controller/restapi/v1"
	"github.com/alexai/greeting-cards/internal/usecase"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// @title AlexAI Greeting Cards
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, card usecase.CardUseCase, l logger.Interface) {
	app.Use(corsMiddleware())

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	edge.NewCardRoutes(app, card, l)

	apiV1Group := app.Group("/v1")
	{
		v1.NewCardRoutes(apiV1Group, card, l)
	}
}

// corsMiddleware attaches permissive CORS headers to every response and
// answers preflight with 200 and an empty body. Fiber's bundled cors handler
// hardcodes 204 for preflight, which breaks the retrieval contract.
func corsMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		ctx.Set(fiber.HeaderAccessControlAllowMethods, "GET, HEAD, POST, OPTIONS")
		ctx.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")

		if ctx.Method() == fiber.MethodOptions {
			return ctx.Status(http.StatusOK).Send(nil)
		}

		return ctx.Next()
	}
}
