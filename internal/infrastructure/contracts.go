package infrastructure

import "context"

type (
	// Generator produces raw image bytes for a composed prompt at the given
	// aspect ratio. It issues exactly one logical request; retry policy
	// belongs to the caller.
	Generator interface {
		Generate(ctx context.Context, prompt, aspectRatio string) ([]byte, error)
	}

	// Watermarker composites the brand mark onto image bytes. It never fails:
	// on any internal error it returns the input unchanged.
	Watermarker interface {
		Apply(ctx context.Context, data []byte) []byte
	}
)
