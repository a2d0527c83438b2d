package usecase

import (
	"context"

	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/entity"
	"github.com/google/uuid"
)

type (
	// CardUseCase runs the creation pipeline and serves read-only retrieval.
	// A card "exists" only when both its image and metadata objects do.
	CardUseCase interface {
		CreateCard(ctx context.Context, req dto.CreateCardRequest) (*entity.Card, error)
		// GetCard returns the parsed metadata together with the verbatim
		// sidecar bytes served on the API route.
		GetCard(ctx context.Context, id uuid.UUID) (*entity.Metadata, []byte, error)
		GetCardImage(ctx context.Context, id uuid.UUID) ([]byte, error)
		ShareURL(id uuid.UUID) string
	}
)
