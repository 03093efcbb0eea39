package service

import (
	"context"
	"fmt"
	"strings"

	"yatube/internal/domains/group/model"
	"yatube/internal/domains/group/repository"
	"yatube/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateGroupRequest) (*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
}

type groupService struct {
	repo repository.RepositoryInterface
}

func NewGroupService(repo repository.RepositoryInterface) ServiceInterface {
	return &groupService{repo: repo}
}

// Create tạo group mới; slug được sinh từ title nếu để trống
func (s *groupService) Create(ctx context.Context, req model.CreateGroupRequest) (*model.Group, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Slug == "" {
		req.Slug = utils.GenerateSlug(req.Title)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	g, err := s.repo.Create(ctx, &model.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("create group %q: %w", req.Slug, err)
	}
	return g, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *groupService) List(ctx context.Context) ([]model.Group, error) {
	return s.repo.List(ctx)
}
