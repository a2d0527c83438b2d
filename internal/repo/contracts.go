package repo

import (
	"context"
	"time"
)

type (
	ObjectInfo struct {
		Key          string
		LastModified time.Time
	}

	// ArtifactRepo is the durable object store holding card images and their
	// metadata sidecars. Absent keys surface as errs.ErrObjectNotFound.
	ArtifactRepo interface {
		UploadBytes(ctx context.Context, key string, data []byte, contentType, cacheControl string) error
		DownloadBytes(ctx context.Context, key string) ([]byte, error)
		Exists(ctx context.Context, key string) (bool, error)
		List(ctx context.Context, prefix string) ([]ObjectInfo, error)
		Delete(ctx context.Context, key string) error
	}
)
