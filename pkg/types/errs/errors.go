package errs

import "errors"

var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrCardNotFound      = errors.New("card not found")
	ErrObjectNotFound    = errors.New("object not found")
	ErrGenerationTimeout = errors.New("generation timed out")
	ErrGenerationService = errors.New("generation service error")
)
