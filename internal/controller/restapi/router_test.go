package restapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexai/greeting-cards/config"
	"github.com/alexai/greeting-cards/internal/controller/restapi"
	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/entity"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storedCard struct {
	meta  entity.Metadata
	raw   []byte
	image []byte
}

// fakeCardUseCase satisfies usecase.CardUseCase without any storage backend.
type fakeCardUseCase struct {
	cards     map[uuid.UUID]*storedCard
	createErr error
}

func newFakeCardUseCase() *fakeCardUseCase {
	return &fakeCardUseCase{cards: map[uuid.UUID]*storedCard{}}
}

func (f *fakeCardUseCase) add(t *testing.T, meta entity.Metadata, image []byte) uuid.UUID {
	t.Helper()

	id := uuid.New()
	meta.CardID = id.String()

	raw, err := json.Marshal(meta)
	require.NoError(t, err)

	f.cards[id] = &storedCard{meta: meta, raw: raw, image: image}

	return id
}

func (f *fakeCardUseCase) CreateCard(_ context.Context, req dto.CreateCardRequest) (*entity.Card, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	id := uuid.New()
	card := &entity.Card{
		ID:          id,
		Template:    req.Template,
		Recipient:   req.Recipient,
		Message:     req.Message,
		Date:        req.Date,
		CreatedAt:   time.Now(),
		ImageKey:    entity.ImageKey(id),
		MetadataKey: entity.MetadataKey(id),
		ImageURL:    "https://cards.example.com/" + entity.ImageKey(id),
		ShareURL:    f.ShareURL(id),
	}

	return card, nil
}

func (f *fakeCardUseCase) GetCard(_ context.Context, id uuid.UUID) (*entity.Metadata, []byte, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, nil, fmt.Errorf("fake - GetCard: %w", errs.ErrCardNotFound)
	}

	meta := c.meta

	return &meta, c.raw, nil
}

func (f *fakeCardUseCase) GetCardImage(_ context.Context, id uuid.UUID) ([]byte, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, fmt.Errorf("fake - GetCardImage: %w", errs.ErrCardNotFound)
	}

	return c.image, nil
}

func (f *fakeCardUseCase) ShareURL(id uuid.UUID) string {
	return "https://cards.example.com/view?id=" + id.String()
}

func newTestApp(uc *fakeCardUseCase) *fiber.App {
	app := fiber.New()
	restapi.NewRouter(app, &config.Config{}, uc, logger.New("error"))

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body io.Reader) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return b
}

func TestCORSHeadersOnEveryRoute(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	for _, target := range []string{"/", "/view?id=x", "/api/card/nope", "/cards/nope.jpg"} {
		resp := doRequest(t, app, http.MethodGet, target, nil)
		readBody(t, resp)

		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), target)
		assert.Equal(t, "GET, HEAD, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"), target)
	}
}

func TestOptionsPreflight(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	resp := doRequest(t, app, http.MethodOptions, "/api/card/some-id", nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHomepage(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	resp := doRequest(t, app, http.MethodGet, "/", nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "AlexAI Greeting Cards")
}

func TestNotFoundFormatsPerRoute(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())
	id := uuid.New()

	view := doRequest(t, app, http.MethodGet, "/view?id="+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, view.StatusCode)
	assert.Contains(t, view.Header.Get("Content-Type"), "text/plain")
	assert.Equal(t, "Card not found", string(readBody(t, view)))

	img := doRequest(t, app, http.MethodGet, "/cards/"+id.String()+".jpg", nil)
	assert.Equal(t, http.StatusNotFound, img.StatusCode)
	assert.Contains(t, img.Header.Get("Content-Type"), "text/plain")
	readBody(t, img)

	api := doRequest(t, app, http.MethodGet, "/api/card/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, api.StatusCode)
	assert.Contains(t, api.Header.Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"Card not found"}`, string(readBody(t, api)))
}

func TestViewRequiresID(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	missing := doRequest(t, app, http.MethodGet, "/view", nil)
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
	readBody(t, missing)

	malformed := doRequest(t, app, http.MethodGet, "/view?id=not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)
	readBody(t, malformed)
}

func TestViewPageEscapesUserFields(t *testing.T) {
	uc := newFakeCardUseCase()
	id := uc.add(t, entity.Metadata{
		Template:  "Birthday",
		Recipient: `<script>alert("x")</script>`,
		Message:   "Tom & Jerry <3",
		CreatedAt: time.Now(),
	}, []byte("img"))
	app := newTestApp(uc)

	resp := doRequest(t, app, http.MethodGet, "/view?id="+id.String(), nil)
	body := string(readBody(t, resp))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, `<script>alert`)
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Tom &amp; Jerry")
	assert.Contains(t, body, "/cards/"+id.String()+".jpg")
}

func TestImageRoute(t *testing.T) {
	uc := newFakeCardUseCase()
	id := uc.add(t, entity.Metadata{Template: "Birthday", CreatedAt: time.Now()}, []byte("jpeg-data"))
	app := newTestApp(uc)

	resp := doRequest(t, app, http.MethodGet, "/cards/"+id.String()+".jpg", nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000", resp.Header.Get("Cache-Control"))
	assert.Equal(t, []byte("jpeg-data"), body)
}

func TestImageRouteRejectsOddFilenames(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	for _, target := range []string{"/cards/whatever.png", "/cards/not-a-uuid.jpg"} {
		resp := doRequest(t, app, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		readBody(t, resp)
	}
}

func TestAPIServesMetadataVerbatim(t *testing.T) {
	uc := newFakeCardUseCase()
	id := uc.add(t, entity.Metadata{
		Template:  "Birthday",
		Recipient: "Mom",
		Message:   "Happy Birthday!",
		Date:      "2024-05-01",
		CreatedAt: time.Now(),
	}, []byte("img"))
	app := newTestApp(uc)

	resp := doRequest(t, app, http.MethodGet, "/api/card/"+id.String(), nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.Equal(t, uc.cards[id].raw, body)
}

func TestConcurrentReadsReturnIdenticalBodies(t *testing.T) {
	uc := newFakeCardUseCase()
	id := uc.add(t, entity.Metadata{Template: "Birthday", CreatedAt: time.Now()}, []byte("jpeg-data"))
	app := newTestApp(uc)

	const readers = 8

	bodies := make(chan []byte, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/cards/"+id.String()+".jpg", nil)
			resp, err := app.Test(req, 5000)
			if err != nil {
				bodies <- nil

				return
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				bodies <- nil

				return
			}
			bodies <- b
		}()
	}
	wg.Wait()
	close(bodies)

	for b := range bodies {
		assert.Equal(t, []byte("jpeg-data"), b)
	}
}

func TestShareQR(t *testing.T) {
	uc := newFakeCardUseCase()
	id := uc.add(t, entity.Metadata{Template: "Birthday", CreatedAt: time.Now()}, []byte("img"))
	app := newTestApp(uc)

	resp := doRequest(t, app, http.MethodGet, "/cards/"+id.String()+"/qr.png", nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(body))
	assert.NoError(t, err)

	missing := doRequest(t, app, http.MethodGet, "/cards/"+uuid.NewString()+"/qr.png", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	readBody(t, missing)
}

func TestCreateCardEndpoint(t *testing.T) {
	uc := newFakeCardUseCase()
	app := newTestApp(uc)

	payload := `{"template":"Birthday","recipient":"Mom","message":"Happy Birthday!","date":"2024-05-01"}`
	resp := doRequest(t, app, http.MethodPost, "/v1/cards", strings.NewReader(payload))
	body := readBody(t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		CardID    string `json:"card_id"`
		Template  string `json:"template"`
		ShareURL  string `json:"share_url"`
		ImageURL  string `json:"image_url"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	assert.Equal(t, "Birthday", created.Template)
	assert.NotEmpty(t, created.CardID)
	assert.Contains(t, created.ShareURL, "/view?id="+created.CardID)
	assert.NotEmpty(t, created.ImageURL)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestCreateCardEndpointErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		err     error
		want    int
	}{
		{"missing template", `{}`, nil, http.StatusBadRequest},
		{"unknown template", `{"template":"Unknown"}`, errs.ErrUnknownTemplate, http.StatusBadRequest},
		{"generation timeout", `{"template":"Birthday"}`, errs.ErrGenerationTimeout, http.StatusGatewayTimeout},
		{"generation failure", `{"template":"Birthday"}`, errs.ErrGenerationService, http.StatusBadGateway},
		{"storage failure", `{"template":"Birthday"}`, fmt.Errorf("s3 down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newFakeCardUseCase()
			uc.createErr = tt.err
			app := newTestApp(uc)

			resp := doRequest(t, app, http.MethodPost, "/v1/cards", strings.NewReader(tt.payload))
			readBody(t, resp)

			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestListTemplates(t *testing.T) {
	app := newTestApp(newFakeCardUseCase())

	resp := doRequest(t, app, http.MethodGet, "/v1/templates", nil)
	body := readBody(t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		AspectRatio string `json:"aspect_ratio"`
	}
	require.NoError(t, json.Unmarshal(body, &list))

	require.Len(t, list, 10)
	assert.Equal(t, "Birthday", list[0].Name)
	for _, tpl := range list {
		assert.Equal(t, "16:9", tpl.AspectRatio)
	}
}
