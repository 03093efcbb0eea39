package repository

import (
	"context"

	"github.com/google/uuid"

	"yatube/internal/domains/post/model"
)

// Filter giới hạn listing theo tác giả và/hoặc group. Field nil = không lọc.
type Filter struct {
	AuthorID *uuid.UUID
	GroupID  *int64
}

// RepositoryInterface: mọi listing đều sort mới nhất trước (pub_date DESC, id DESC)
type RepositoryInterface interface {
	Create(ctx context.Context, authorID uuid.UUID, fields model.PostFields) (*model.Post, error)
	// Update chỉ thành công khi editorID là tác giả, ngược lại trả ErrNotAuthor
	Update(ctx context.Context, id int64, editorID uuid.UUID, fields model.PostFields) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]model.Post, error)
	Count(ctx context.Context, f Filter) (int, error)
}
