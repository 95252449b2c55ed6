package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"passdesk/internal/domain"
	"passdesk/internal/port"
)

// MockEntryRepo is a mock implementation of port.EntryRepository.
type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepo) GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepo) List(ctx context.Context, filter port.EntryFilter) ([]domain.Entry, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entry), args.Int(1), args.Error(2)
}

func (m *MockEntryRepo) ListAll(ctx context.Context) ([]domain.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepo) Delete(ctx context.Context, entryID uuid.UUID) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepo) DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, entryIDs)
	return args.Int(0), args.Error(1)
}
