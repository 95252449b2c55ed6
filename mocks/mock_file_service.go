package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"passdesk/internal/domain"
	"passdesk/internal/service"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, input service.FileUploadInput) (*domain.FileMeta, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileMeta), args.Error(1)
}

func (m *MockFileService) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileMeta), args.Error(1)
}

func (m *MockFileService) GetBytes(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, []byte, error) {
	args := m.Called(ctx, fileID)
	var meta *domain.FileMeta
	if args.Get(0) != nil {
		meta = args.Get(0).(*domain.FileMeta)
	}
	var data []byte
	if args.Get(1) != nil {
		data = args.Get(1).([]byte)
	}
	return meta, data, args.Error(2)
}

func (m *MockFileService) ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FileMeta), args.Int(1), args.Error(2)
}

func (m *MockFileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
