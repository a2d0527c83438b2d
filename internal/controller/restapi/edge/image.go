package edge

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// Stored cards never change, so both images and QR codes cache for a year.
	cacheControlImmutable = "public, max-age=31536000"

	qrSize = 512
)

func (r *Edge) cardImage(ctx *fiber.Ctx) error {
	file := ctx.Params("file")
	idStr, ok := strings.CutSuffix(file, ".jpg")
	if !ok {
		return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
	}

	data, err := r.card.GetCardImage(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrCardNotFound) {
			return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
		}
		r.logger.Error(err, "edge - cardImage")

		return plainResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "image/jpeg")
	ctx.Set(fiber.HeaderCacheControl, cacheControlImmutable)

	return ctx.Send(data)
}

// shareQR renders the card's share link as a QR code. Same 404 rules as the
// image route: the card must be fully written.
func (r *Edge) shareQR(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
	}

	if _, _, err := r.card.GetCard(ctx.UserContext(), id); err != nil {
		if errors.Is(err, errs.ErrCardNotFound) {
			return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
		}
		r.logger.Error(err, "edge - shareQR")

		return plainResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	png, err := qrcode.Encode(r.card.ShareURL(id), qrcode.Medium, qrSize)
	if err != nil {
		r.logger.Error(err, "edge - shareQR - qrcode.Encode")

		return plainResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	ctx.Set(fiber.HeaderCacheControl, cacheControlImmutable)

	return ctx.Send(png)
}
