package v1

import (
	"github.com/alexai/greeting-cards/internal/controller/restapi/v1/response"
	"github.com/alexai/greeting-cards/internal/usecase"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type V1 struct {
	card   usecase.CardUseCase
	logger logger.Interface
}

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}
