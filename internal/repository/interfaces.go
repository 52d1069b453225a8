package repository

import (
	"context"

	"github.com/rpattn/filedash/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for account operations
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// GetByUsernames returns the users that exist, in no particular order.
	GetByUsernames(ctx context.Context, usernames []string) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileRepository defines the interface for file catalog operations
type FileRepository interface {
	Create(ctx context.Context, file domain.File) (domain.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.File, error)
	// List returns files newest first, narrowed by filter when non-nil.
	List(ctx context.Context, filter *domain.FileFilter) ([]domain.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
