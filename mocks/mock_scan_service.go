package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"passdesk/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) ScanImage(ctx context.Context, image []byte) (*service.ScanResult, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) ScanFile(ctx context.Context, fileID uuid.UUID) (*service.ScanResult, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) ScanBatch(ctx context.Context, fileIDs []uuid.UUID) ([]service.BatchScanItem, error) {
	args := m.Called(ctx, fileIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.BatchScanItem), args.Error(1)
}
