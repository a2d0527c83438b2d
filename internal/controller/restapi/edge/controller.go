// Package edge is the stateless read-only surface anonymous viewers hit. Every
// handler is a pure function of the request and the artifact store; 404
// formats follow the route family (plain text for HTML routes, JSON for the
// API route).
package edge

import (
	"github.com/alexai/greeting-cards/internal/usecase"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

const msgCardNotFound = "Card not found"

type Edge struct {
	card   usecase.CardUseCase
	logger logger.Interface
}

func plainResponse(ctx *fiber.Ctx, code int, msg string) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return ctx.Status(code).SendString(msg)
}

func jsonError(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(fiber.Map{"error": msg})
}
