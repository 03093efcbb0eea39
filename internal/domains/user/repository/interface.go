package repository

import (
	"context"

	"github.com/google/uuid"

	"yatube/internal/domains/user/model"
)

// RepositoryInterface định nghĩa data access cho users
type RepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
