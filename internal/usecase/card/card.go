package card

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/entity"
	"github.com/alexai/greeting-cards/internal/infrastructure"
	"github.com/alexai/greeting-cards/internal/repo"
	"github.com/alexai/greeting-cards/internal/templates"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypeJSON = "application/json"

	// Cards are immutable once written, so images may be cached indefinitely.
	imageCacheControl = "public, max-age=31536000"
)

type CardUseCase struct {
	artifacts   repo.ArtifactRepo
	generator   infrastructure.Generator
	watermarker infrastructure.Watermarker

	baseURL   string
	publicURL string

	logger logger.Interface
}

func New(
	artifacts repo.ArtifactRepo,
	generator infrastructure.Generator,
	watermarker infrastructure.Watermarker,
	l logger.Interface,
	baseURL string,
	publicURL string,
) *CardUseCase {
	return &CardUseCase{
		artifacts:   artifacts,
		generator:   generator,
		watermarker: watermarker,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		publicURL:   strings.TrimSuffix(publicURL, "/"),
		logger:      l,
	}
}

// CreateCard runs one pipeline pass: resolve template, compose prompt,
// generate, watermark, then write image strictly before metadata. Each run
// allocates a fresh id, so re-invoking after a failure can never collide.
func (uc *CardUseCase) CreateCard(ctx context.Context, req dto.CreateCardRequest) (*entity.Card, error) {
	tpl, err := templates.Resolve(req.Template)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - CreateCard - templates.Resolve: %w", err)
	}

	prompt := ComposePrompt(tpl, req)

	data, err := uc.generator.Generate(ctx, prompt, tpl.AspectRatio)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - CreateCard - uc.generator.Generate: %w", err)
	}

	data = uc.watermarker.Apply(ctx, data)

	id := uuid.New()
	card := &entity.Card{
		ID:          id,
		Template:    tpl.Name,
		Recipient:   req.Recipient,
		Message:     req.Message,
		Date:        req.Date,
		CreatedAt:   time.Now(),
		ImageKey:    entity.ImageKey(id),
		MetadataKey: entity.MetadataKey(id),
		ImageURL:    uc.imageURL(id),
		ShareURL:    uc.ShareURL(id),
	}

	// 1. image first: readers may treat metadata presence as card presence
	err = uc.artifacts.UploadBytes(ctx, card.ImageKey, data, contentTypeJPEG, imageCacheControl)
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - CreateCard - uc.artifacts.UploadBytes(image): %w", err)
	}

	meta, err := json.Marshal(entity.Metadata{
		CardID:    id.String(),
		Template:  card.Template,
		Recipient: card.Recipient,
		Message:   card.Message,
		Date:      card.Date,
		CreatedAt: card.CreatedAt,
		ImageURL:  card.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - CreateCard - json.Marshal: %w", err)
	}

	// 2. metadata second
	err = uc.artifacts.UploadBytes(ctx, card.MetadataKey, meta, contentTypeJSON, "")
	if err != nil {
		// best effort: the sweeper catches whatever this misses
		deleteErr := uc.artifacts.Delete(ctx, card.ImageKey)
		if deleteErr != nil {
			uc.logger.Error(deleteErr, "CardUseCase - CreateCard - uc.artifacts.Delete")
		}
		return nil, fmt.Errorf("CardUseCase - CreateCard - uc.artifacts.UploadBytes(metadata): %w", err)
	}

	return card, nil
}

// GetCard requires both objects to be present before reporting the card as
// found. An image without its sidecar is a half-written card and stays
// invisible.
func (uc *CardUseCase) GetCard(ctx context.Context, id uuid.UUID) (*entity.Metadata, []byte, error) {
	ok, err := uc.artifacts.Exists(ctx, entity.ImageKey(id))
	if err != nil {
		return nil, nil, fmt.Errorf("CardUseCase - GetCard - uc.artifacts.Exists: %w", err)
	}
	if !ok {
		return nil, nil, fmt.Errorf("CardUseCase - GetCard - image absent: %w", errs.ErrCardNotFound)
	}

	raw, err := uc.artifacts.DownloadBytes(ctx, entity.MetadataKey(id))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("CardUseCase - GetCard - metadata absent: %w", errs.ErrCardNotFound)
		}
		return nil, nil, fmt.Errorf("CardUseCase - GetCard - uc.artifacts.DownloadBytes: %w", err)
	}

	meta := &entity.Metadata{}
	if err := json.Unmarshal(raw, meta); err != nil {
		return nil, nil, fmt.Errorf("CardUseCase - GetCard - json.Unmarshal: %w", err)
	}

	return meta, raw, nil
}

func (uc *CardUseCase) GetCardImage(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ok, err := uc.artifacts.Exists(ctx, entity.MetadataKey(id))
	if err != nil {
		return nil, fmt.Errorf("CardUseCase - GetCardImage - uc.artifacts.Exists: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("CardUseCase - GetCardImage - metadata absent: %w", errs.ErrCardNotFound)
	}

	data, err := uc.artifacts.DownloadBytes(ctx, entity.ImageKey(id))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("CardUseCase - GetCardImage - image absent: %w", errs.ErrCardNotFound)
		}
		return nil, fmt.Errorf("CardUseCase - GetCardImage - uc.artifacts.DownloadBytes: %w", err)
	}

	return data, nil
}

func (uc *CardUseCase) ShareURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/view?id=%s", uc.baseURL, id)
}

func (uc *CardUseCase) imageURL(id uuid.UUID) string {
	if uc.publicURL != "" {
		return fmt.Sprintf("%s/%s", uc.publicURL, entity.ImageKey(id))
	}

	return fmt.Sprintf("%s/%s", uc.baseURL, entity.ImageKey(id))
}
