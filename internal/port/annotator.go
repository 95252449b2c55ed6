package port

import (
	"context"

	"passdesk/internal/extract"
)

// AnnotateInput carries the image data sent for OCR text annotation.
type AnnotateInput struct {
	ImageBytes  []byte
	ContentType string
}

// Annotator abstracts the OCR text-annotation backend. Implementations
// return the full transcription plus per-token bounding geometry.
type Annotator interface {
	Annotate(ctx context.Context, input AnnotateInput) (*extract.AnnotationSet, error)
}
