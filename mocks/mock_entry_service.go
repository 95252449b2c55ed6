package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"passdesk/internal/domain"
	"passdesk/internal/port"
	"passdesk/internal/service"
)

// MockEntryService is a mock implementation of service.EntryService.
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) Register(ctx context.Context, userID uuid.UUID, input service.RegisterEntryInput) (*domain.Entry, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) List(ctx context.Context, filter port.EntryFilter) ([]domain.Entry, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Int(1), args.Error(2)
}

func (m *MockEntryService) Update(ctx context.Context, entryID uuid.UUID, input service.UpdateEntryInput) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, entryID uuid.UUID) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryService) DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, entryIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryService) CheckValidity(ctx context.Context, input service.ValidityCheckInput) ([]domain.ValidityResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidityResult), args.Error(1)
}

func (m *MockEntryService) NormalizeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockEntryService) AppendToWorkbook(ctx context.Context, entryID uuid.UUID, book []byte) ([]byte, error) {
	args := m.Called(ctx, entryID, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
