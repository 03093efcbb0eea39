package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yatube/internal/domains/user/model"
	"yatube/pkg/jwt"
)

// ServiceInterface là business logic của user domain: đăng ký, đăng nhập, session
type ServiceInterface interface {
	Register(ctx context.Context, form model.SignupForm) (*model.User, error)
	Login(ctx context.Context, form model.LoginForm) (*model.Session, error)
	Logout(ctx context.Context, token string) error

	// Authenticate resolve access token thành user, dùng bởi auth middleware
	Authenticate(ctx context.Context, token string) (*model.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenManager là phần của jwt.Manager mà service cần
type TokenManager interface {
	GenerateAccessToken(userID, username, sessionID string) (string, time.Time, error)
	ValidateAccessToken(token string) (*jwt.Claims, error)
	TTL() time.Duration
}

// SessionStore lưu session id phía server (Redis)
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, id string) (uuid.UUID, error)
	Revoke(ctx context.Context, id string) error
}
