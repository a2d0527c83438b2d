package edge

import (
	"github.com/alexai/greeting-cards/internal/usecase"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewCardRoutes(app fiber.Router, card usecase.CardUseCase, l logger.Interface) {
	r := &Edge{card: card, logger: l}

	{
		// HTML
		app.Get("/", r.home)
		app.Get("/view", r.viewCard)

		// Artifacts
		app.Get("/cards/:id/qr.png", r.shareQR)
		app.Get("/cards/:file", r.cardImage)

		// API
		app.Get("/api/card/:id", r.cardMetadata)
	}
}
