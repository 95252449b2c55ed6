package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"passdesk/internal/extract"
	"passdesk/internal/port"
)

// MockAnnotator is a mock implementation of port.Annotator.
type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(ctx context.Context, input port.AnnotateInput) (*extract.AnnotationSet, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.AnnotationSet), args.Error(1)
}
