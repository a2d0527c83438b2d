package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexai/greeting-cards/internal/controller/restapi/v1/response"
	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/templates"
	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Create greeting card
// @Description Composes a prompt from the template and request fields, generates a 4K image, watermarks it and stores image + metadata
// @Tags 		cards
// @Accept 		json
// @Produce 	json
// @Param 		request body dto.CreateCardRequest true "Card request (template is required)"
// @Success 	201 {object} response.CreateCard
// @Failure 	400 {object} response.Error "Unknown or missing template"
// @Failure 	502 {object} response.Error "Generation backend failed"
// @Failure 	504 {object} response.Error "Generation timed out"
// @Failure 	500 {object} response.Error "Storage problems"
// @Router 		/cards [post]
func (r *V1) createCard(ctx *fiber.Ctx) error {
	var req dto.CreateCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid request body")
	}

	if req.Template == "" {
		return errorResponse(ctx, http.StatusBadRequest, "template is required")
	}

	card, err := r.card.CreateCard(ctx.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnknownTemplate):
			return errorResponse(ctx, http.StatusBadRequest, "unknown template")
		case errors.Is(err, errs.ErrGenerationTimeout):
			return errorResponse(ctx, http.StatusGatewayTimeout, "card generation timed out")
		case errors.Is(err, errs.ErrGenerationService):
			return errorResponse(ctx, http.StatusBadGateway, "card generation failed")
		}
		r.logger.Error(err, "restapi - v1 - createCard")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.CreateCard{
		CardID:    card.ID.String(),
		Template:  card.Template,
		ShareURL:  card.ShareURL,
		ImageURL:  card.ImageURL,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
	}

	return ctx.Status(http.StatusCreated).JSON(resp)
}

// @Summary 	List card templates
// @Description Returns the fixed occasion template set in registry order
// @Tags 		cards
// @Produce 	json
// @Success 	200 {array} response.TemplateInfo
// @Router 		/templates [get]
func (r *V1) listTemplates(ctx *fiber.Ctx) error {
	all := templates.All()

	resp := make([]response.TemplateInfo, len(all))
	for i, t := range all {
		resp[i] = response.TemplateInfo{
			Name:        t.Name,
			Description: t.Description,
			AspectRatio: t.AspectRatio,
		}
	}

	return ctx.JSON(resp)
}
