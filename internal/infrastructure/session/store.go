package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yatube/pkg/cache"
)

const keyPrefix = "session:"

// ErrSessionNotFound trả về khi session đã hết hạn hoặc bị revoke (logout)
var ErrSessionNotFound = errors.New("session not found")

type record struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store lưu server-side session id cho mỗi lần login.
// JWT mang session id (jti); logout xóa key nên token cũ mất hiệu lực.
type Store struct {
	cache cache.Cache
}

func NewStore(c cache.Cache) *Store {
	return &Store{cache: c}
}

// Create mở session mới cho user và trả về session id
func (s *Store) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	rec := record{UserID: userID.String(), CreatedAt: time.Now().UTC()}

	if err := s.cache.Set(ctx, keyPrefix+id, rec, ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Lookup trả về user id của session
func (s *Store) Lookup(ctx context.Context, id string) (uuid.UUID, error) {
	var rec record
	found, err := s.cache.Get(ctx, keyPrefix+id, &rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return uuid.Nil, ErrSessionNotFound
	}

	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return userID, nil
}

func (s *Store) Revoke(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, keyPrefix+id)
}
