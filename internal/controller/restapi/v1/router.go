package v1

import (
	"github.com/alexai/greeting-cards/internal/usecase"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewCardRoutes(apiV1Group fiber.Router, card usecase.CardUseCase, l logger.Interface) {
	r := &V1{card: card, logger: l}

	{
		apiV1Group.Post("/cards", r.createCard)
		apiV1Group.Get("/templates", r.listTemplates)
	}
}
