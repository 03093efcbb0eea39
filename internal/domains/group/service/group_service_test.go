package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yatube/internal/domains/group/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, g *model.Group) (*model.Group, error) {
	args := m.Called(ctx, g)
	if out := args.Get(0); out != nil {
		return out.(*model.Group), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	args := m.Called(ctx, id)
	if out := args.Get(0); out != nil {
		return out.(*model.Group), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	args := m.Called(ctx, slug)
	if out := args.Get(0); out != nil {
		return out.(*model.Group), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]model.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Group), args.Error(1)
}

func TestCreateGeneratesSlugFromTitle(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := NewGroupService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(g *model.Group) bool {
		return g.Slug == "lev-tolstoy" && g.Title == "Lev Tolstoy"
	})).Return(&model.Group{ID: 1, Title: "Lev Tolstoy", Slug: "lev-tolstoy"}, nil).Once()

	g, err := svc.Create(ctx, model.CreateGroupRequest{Title: " Lev Tolstoy "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), g.ID)
	repo.AssertExpectations(t)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := NewGroupService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(g *model.Group) bool { return g.Slug == "leo" })).
		Return(&model.Group{ID: 2, Title: "Lev Tolstoy", Slug: "leo"}, nil).Once()

	_, err := svc.Create(ctx, model.CreateGroupRequest{Title: "Lev Tolstoy", Slug: "leo"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateRejectsBadInput(t *testing.T) {
	repo := new(mockRepository)
	svc := NewGroupService(repo)

	_, err := svc.Create(context.Background(), model.CreateGroupRequest{Title: ""})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), model.CreateGroupRequest{Title: "Cats", Slug: "no spaces"})
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := NewGroupService(repo)

	repo.On("Create", ctx, mock.Anything).Return(nil, model.ErrDuplicateSlug).Once()

	_, err := svc.Create(ctx, model.CreateGroupRequest{Title: "Cats"})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
	assert.Equal(t, 409, model.ToHTTPStatus(err))
}

func TestGroupString(t *testing.T) {
	g := &model.Group{Title: "Лев Толстой", Slug: "tolstoy"}
	assert.Equal(t, "Лев Толстой", g.String())
}
