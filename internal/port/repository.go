package port

import (
	"context"

	"github.com/google/uuid"

	"passdesk/internal/domain"
)

// UserRepository defines the contract for operator account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
	CountAdmins(ctx context.Context) (int, error)
}

// EntryFilter narrows registry listing.
type EntryFilter struct {
	PassportNo string
	Surname    string
	Offset     int
	Limit      int
}

// EntryRepository defines the contract for registry entry persistence.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, entryID uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]domain.Entry, int, error)
	ListAll(ctx context.Context) ([]domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, entryID uuid.UUID) error
	DeleteMany(ctx context.Context, entryIDs []uuid.UUID) (int, error)
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByUploader(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}
