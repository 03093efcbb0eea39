package repository

import (
	"context"

	"yatube/internal/domains/group/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, g *model.Group) (*model.Group, error)
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	// List trả về tất cả groups, sort theo title
	List(ctx context.Context) ([]model.Group, error)
}
