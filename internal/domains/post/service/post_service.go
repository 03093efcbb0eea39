package service

import (
	"context"
	"fmt"

	"yatube/internal/domains/post/model"
	"yatube/internal/domains/post/repository"
	userModel "yatube/internal/domains/user/model"
	"yatube/internal/shared/pagination"
	"yatube/pkg/logger"
)

type postService struct {
	repo    repository.RepositoryInterface
	perPage int
}

func NewPostService(repo repository.RepositoryInterface, perPage int) ServiceInterface {
	if perPage < 1 {
		perPage = pagination.PerPage
	}
	return &postService{repo: repo, perPage: perPage}
}

func (s *postService) List(ctx context.Context, f repository.Filter, rawPage string) (*pagination.Page[model.Post], error) {
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	w := pagination.Resolve(rawPage, total, s.perPage)
	if total == 0 {
		return pagination.NewPage([]model.Post{}, w), nil
	}

	posts, err := s.repo.List(ctx, f, w.Limit(), w.Offset())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewPage(posts, w), nil
}

func (s *postService) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *postService) CountByAuthor(ctx context.Context, author *userModel.User) (int, error) {
	return s.repo.Count(ctx, repository.Filter{AuthorID: &author.ID})
}

func (s *postService) Create(ctx context.Context, author *userModel.User, fields model.PostFields) (*model.Post, error) {
	p, err := s.repo.Create(ctx, author.ID, fields)
	if err != nil {
		return nil, err
	}

	logger.Info("post created", map[string]interface{}{"post_id": p.ID, "author": author.Username})
	return p, nil
}

func (s *postService) Update(ctx context.Context, editor *userModel.User, id int64, fields model.PostFields) (*model.Post, error) {
	p, err := s.repo.Update(ctx, id, editor.ID, fields)
	if err != nil {
		return nil, err
	}

	logger.Info("post updated", map[string]interface{}{"post_id": p.ID, "author": editor.Username})
	return p, nil
}
