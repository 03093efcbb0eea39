package service

import (
	"context"

	"yatube/internal/domains/post/model"
	"yatube/internal/domains/post/repository"
	userModel "yatube/internal/domains/user/model"
	"yatube/internal/shared/pagination"
)

// ServiceInterface là business logic của post domain
type ServiceInterface interface {
	// List trả về một trang post theo filter; rawPage lấy từ ?page=
	List(ctx context.Context, f repository.Filter, rawPage string) (*pagination.Page[model.Post], error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	CountByAuthor(ctx context.Context, author *userModel.User) (int, error)

	// Create lưu post mới với author = user đang đăng nhập
	Create(ctx context.Context, author *userModel.User, fields model.PostFields) (*model.Post, error)
	// Update chỉ cho phép tác giả; user khác nhận ErrNotAuthor
	Update(ctx context.Context, editor *userModel.User, id int64, fields model.PostFields) (*model.Post, error)
}
