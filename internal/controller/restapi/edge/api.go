package edge

import (
	"errors"
	"net/http"

	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// cardMetadata serves the stored sidecar verbatim.
func (r *Edge) cardMetadata(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return jsonError(ctx, http.StatusNotFound, msgCardNotFound)
	}

	_, raw, err := r.card.GetCard(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrCardNotFound) {
			return jsonError(ctx, http.StatusNotFound, msgCardNotFound)
		}
		r.logger.Error(err, "edge - cardMetadata")

		return jsonError(ctx, http.StatusInternalServerError, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return ctx.Send(raw)
}
