package edge

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	//go:embed web/index.html web/view.html
	webFiles embed.FS

	// html/template escapes every interpolated field, which is what keeps
	// user-supplied recipients and messages from injecting markup.
	viewTmpl = template.Must(template.ParseFS(webFiles, "web/view.html"))
)

type viewData struct {
	ID        string
	Template  string
	Recipient string
	Message   string
	Date      string
	CreatedAt string
	ImageSrc  string
}

func (r *Edge) home(ctx *fiber.Ctx) error {
	file, err := webFiles.ReadFile("web/index.html")
	if err != nil {
		r.logger.Error(err, "edge - home")

		return plainResponse(ctx, http.StatusInternalServerError, "problems with loading the page")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return ctx.Send(file)
}

func (r *Edge) viewCard(ctx *fiber.Ctx) error {
	idStr := ctx.Query("id")
	if idStr == "" {
		return plainResponse(ctx, http.StatusBadRequest, "id query parameter is required")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return plainResponse(ctx, http.StatusBadRequest, "invalid card id")
	}

	meta, _, err := r.card.GetCard(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrCardNotFound) {
			return plainResponse(ctx, http.StatusNotFound, msgCardNotFound)
		}
		r.logger.Error(err, "edge - viewCard")

		return plainResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	err = viewTmpl.Execute(&buf, viewData{
		ID:        id.String(),
		Template:  meta.Template,
		Recipient: meta.Recipient,
		Message:   meta.Message,
		Date:      meta.Date,
		CreatedAt: meta.CreatedAt.Format("January 2, 2006"),
		ImageSrc:  "/cards/" + id.String() + ".jpg",
	})
	if err != nil {
		r.logger.Error(err, "edge - viewCard - viewTmpl.Execute")

		return plainResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return ctx.Send(buf.Bytes())
}
