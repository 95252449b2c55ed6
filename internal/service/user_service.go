package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"passdesk/internal/domain"
	"passdesk/internal/port"
)

// validRoles lists assignable operator roles.
var validRoles = map[domain.UserRole]bool{
	domain.RoleAdmin:  true,
	domain.RoleMember: true,
}

// CreateUserInput is the DTO for creating an operator account.
type CreateUserInput struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

// UpdateUserInput is the DTO for updating an operator account.
type UpdateUserInput struct {
	Password *string          `json:"password"`
	Role     *domain.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

// UserService defines the operator account management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !validRoles[input.Role] {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	wasActiveAdmin := user.Role == domain.RoleAdmin && user.IsActive

	if input.Password != nil {
		hash, herr := bcrypt.GenerateFromPassword([]byte(*input.Password), 12)
		if herr != nil {
			return nil, fmt.Errorf("hashing password: %w", herr)
		}
		user.PasswordHash = string(hash)
	}
	if input.Role != nil {
		if !validRoles[*input.Role] {
			return nil, domain.ErrForbidden
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	// Demoting or deactivating the only admin would lock everyone out.
	if wasActiveAdmin && (user.Role != domain.RoleAdmin || !user.IsActive) {
		admins, cerr := s.repo.CountAdmins(ctx)
		if cerr != nil {
			return nil, cerr
		}
		if admins <= 1 {
			return nil, domain.ErrLastAdmin
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureNotLastAdmin(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

func (s *userService) ensureNotLastAdmin(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin || !user.IsActive {
		return nil
	}
	admins, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}
