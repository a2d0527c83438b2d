package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexai/greeting-cards/internal/repo"
	"github.com/alexai/greeting-cards/pkg/s3client"
	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type ArtifactRepo struct {
	*s3client.S3Client
	bucket string
}

var _ repo.ArtifactRepo = (*ArtifactRepo)(nil)

func NewArtifactRepo(s3c *s3client.S3Client, bucket string) *ArtifactRepo {
	return &ArtifactRepo{s3c, bucket}
}

func (r *ArtifactRepo) UploadBytes(ctx context.Context, key string, data []byte, contentType, cacheControl string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}

	_, err := r.Client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("ArtifactRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *ArtifactRepo) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("ArtifactRepo - DownloadBytes - key=%s: %w", key, errs.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("ArtifactRepo - DownloadBytes - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("ArtifactRepo - DownloadBytes - io.ReadAll: %w", err)
	}

	return b, nil
}

func (r *ArtifactRepo) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("ArtifactRepo - Exists - r.Client.HeadObject: %w", err)
	}

	return true, nil
}

func (r *ArtifactRepo) List(ctx context.Context, prefix string) ([]repo.ObjectInfo, error) {
	var objects []repo.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(r.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ArtifactRepo - List - paginator.NextPage: %w", err)
		}

		for _, obj := range page.Contents {
			objects = append(objects, repo.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}

func (r *ArtifactRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ArtifactRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}
