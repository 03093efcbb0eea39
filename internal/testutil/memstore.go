// Package testutil có các repository in-memory để test router end-to-end
// mà không cần PostgreSQL. Semantics bám theo repository postgres:
// cùng sentinel errors, cùng thứ tự sort, author/group được join lúc đọc.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	groupModel "yatube/internal/domains/group/model"
	groupRepo "yatube/internal/domains/group/repository"
	postModel "yatube/internal/domains/post/model"
	postRepo "yatube/internal/domains/post/repository"
	userModel "yatube/internal/domains/user/model"
	userRepo "yatube/internal/domains/user/repository"
)

type postRow struct {
	id       int64
	text     string
	pubDate  time.Time
	authorID uuid.UUID
	groupID  *int64
}

// Store giữ users, groups, posts trong memory
type Store struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]userModel.User
	groups map[int64]groupModel.Group
	posts  map[int64]postRow

	nextGroupID int64
	nextPostID  int64
	clock       time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[uuid.UUID]userModel.User),
		groups: make(map[int64]groupModel.Group),
		posts:  make(map[int64]postRow),
		clock:  time.Date(2022, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick: mỗi post mới có pub_date muộn hơn post trước một giây
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() userRepo.RepositoryInterface   { return (*users)(s) }
func (s *Store) Groups() groupRepo.RepositoryInterface { return (*groups)(s) }
func (s *Store) Posts() postRepo.RepositoryInterface   { return (*posts)(s) }

// PostCount là tổng số post, dùng để assert create/edit
func (s *Store) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// ========================================
// USERS
// ========================================

type users Store

func (r *users) Create(_ context.Context, u *userModel.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return userModel.ErrUsernameTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *users) GetByID(_ context.Context, id uuid.UUID) (*userModel.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, userModel.ErrUserNotFound
	}
	return &u, nil
}

func (r *users) GetByUsername(_ context.Context, username string) (*userModel.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, userModel.ErrUserNotFound
}

func (r *users) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

// ========================================
// GROUPS
// ========================================

type groups Store

func (r *groups) Create(_ context.Context, g *groupModel.Group) (*groupModel.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.groups {
		if existing.Slug == g.Slug {
			return nil, groupModel.ErrDuplicateSlug
		}
	}
	r.nextGroupID++
	out := *g
	out.ID = r.nextGroupID
	r.groups[out.ID] = out
	return &out, nil
}

func (r *groups) GetByID(_ context.Context, id int64) (*groupModel.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, groupModel.ErrGroupNotFound
	}
	return &g, nil
}

func (r *groups) GetBySlug(_ context.Context, slug string) (*groupModel.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Slug == slug {
			return &g, nil
		}
	}
	return nil, groupModel.ErrGroupNotFound
}

func (r *groups) List(_ context.Context) ([]groupModel.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]groupModel.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ========================================
// POSTS
// ========================================

type posts Store

// hydrate join author và group giống postSelect; gọi khi đang giữ lock
func (r *posts) hydrate(row postRow) postModel.Post {
	p := postModel.Post{ID: row.id, Text: row.text, PubDate: row.pubDate}
	if u, ok := r.users[row.authorID]; ok {
		p.Author = &u
	}
	if row.groupID != nil {
		if g, ok := r.groups[*row.groupID]; ok {
			p.Group = &g
		}
	}
	return p
}

func (r *posts) checkGroup(id *int64) error {
	if id == nil {
		return nil
	}
	if _, ok := r.groups[*id]; !ok {
		return postModel.ErrInvalidGroup
	}
	return nil
}

func (r *posts) Create(_ context.Context, authorID uuid.UUID, fields postModel.PostFields) (*postModel.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[authorID]; !ok {
		return nil, userModel.ErrUserNotFound
	}
	if err := r.checkGroup(fields.GroupID); err != nil {
		return nil, err
	}

	r.nextPostID++
	row := postRow{
		id:       r.nextPostID,
		text:     fields.Text,
		pubDate:  (*Store)(r).tick(),
		authorID: authorID,
		groupID:  fields.GroupID,
	}
	r.posts[row.id] = row

	p := r.hydrate(row)
	return &p, nil
}

func (r *posts) Update(_ context.Context, id int64, editorID uuid.UUID, fields postModel.PostFields) (*postModel.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.posts[id]
	if !ok {
		return nil, postModel.ErrPostNotFound
	}
	if row.authorID != editorID {
		return nil, postModel.ErrNotAuthor
	}
	if err := r.checkGroup(fields.GroupID); err != nil {
		return nil, err
	}

	row.text = fields.Text
	row.groupID = fields.GroupID
	r.posts[id] = row

	p := r.hydrate(row)
	return &p, nil
}

func (r *posts) GetByID(_ context.Context, id int64) (*postModel.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.posts[id]
	if !ok {
		return nil, postModel.ErrPostNotFound
	}
	p := r.hydrate(row)
	return &p, nil
}

// filtered trả về các row khớp filter, mới nhất trước
func (r *posts) filtered(f postRepo.Filter) []postRow {
	var rows []postRow
	for _, row := range r.posts {
		if f.AuthorID != nil && row.authorID != *f.AuthorID {
			continue
		}
		if f.GroupID != nil && (row.groupID == nil || *row.groupID != *f.GroupID) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].pubDate.Equal(rows[j].pubDate) {
			return rows[i].pubDate.After(rows[j].pubDate)
		}
		return rows[i].id > rows[j].id
	})
	return rows
}

func (r *posts) List(_ context.Context, f postRepo.Filter, limit, offset int) ([]postModel.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.filtered(f)
	if offset > len(rows) {
		offset = len(rows)
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}

	out := make([]postModel.Post, 0, end-offset)
	for _, row := range rows[offset:end] {
		out = append(out, r.hydrate(row))
	}
	return out, nil
}

func (r *posts) Count(_ context.Context, f postRepo.Filter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filtered(f)), nil
}
