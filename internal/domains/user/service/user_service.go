package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/domains/user/model"
	"yatube/internal/domains/user/repository"
	"yatube/internal/shared/forms"
	"yatube/pkg/logger"
)

type userService struct {
	repo       repository.RepositoryInterface
	tokens     TokenManager
	sessions   SessionStore
	bcryptCost int
}

// NewUserService tạo service instance
// bcryptCost = 12 ở production; tests dùng bcrypt.MinCost cho nhanh
func NewUserService(repo repository.RepositoryInterface, tokens TokenManager, sessions SessionStore, bcryptCost int) ServiceInterface {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:       repo,
		tokens:     tokens,
		sessions:   sessions,
		bcryptCost: bcryptCost,
	}
}

// ========================================
// REGISTRATION
// ========================================

func (s *userService) Register(ctx context.Context, form model.SignupForm) (*model.User, error) {
	// 1. VALIDATE INPUT
	form.Normalize()
	if errs := form.Validate(); !errs.Empty() {
		return nil, &forms.ValidationError{Fields: errs}
	}

	// 2. BUSINESS RULE: username là duy nhất
	exists, err := s.repo.ExistsByUsername(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, usernameTaken()
	}

	// 3. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. PERSIST
	u := &model.User{
		ID:           uuid.New(),
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// Race giữa ExistsByUsername và INSERT: unique index vẫn bắt được
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, usernameTaken()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered", map[string]interface{}{"user_id": u.ID.String(), "username": u.Username})
	return u, nil
}

func usernameTaken() error {
	fe := forms.FieldErrors{}
	fe.Add("username", "A user with that username already exists.")
	return fmt.Errorf("%w: %w", model.ErrUsernameTaken, &forms.ValidationError{Fields: fe})
}

// ========================================
// AUTHENTICATION
// ========================================

// Login xác thực user, mở session trong store và ký access token
func (s *userService) Login(ctx context.Context, form model.LoginForm) (*model.Session, error) {
	if errs := form.Validate(); !errs.Empty() {
		return nil, &forms.ValidationError{Fields: errs}
	}

	u, err := s.repo.GetByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Không expose "username not found"
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(form.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	sessionID, err := s.sessions.Create(ctx, u.ID, s.tokens.TTL())
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Username, sessionID)
	if err != nil {
		_ = s.sessions.Revoke(ctx, sessionID)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Logout revoke session của token. Token không hợp lệ coi như đã logout.
func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, model.ErrInvalidSession
	}

	userID, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return nil, model.ErrInvalidSession
	}
	if userID.String() != claims.UserID {
		return nil, model.ErrInvalidSession
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidSession
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return u, nil
}

// ========================================
// QUERIES
// ========================================

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}
