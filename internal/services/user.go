package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/invtrack/apiserver/internal/store"
	"github.com/invtrack/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a username does not exist, so that a
// failed login costs one bcrypt verification either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService handles registration and credential verification.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register hashes the password and persists a new user. A duplicate username
// surfaces as store.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (types.User, error) {
	if username == "" {
		return types.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return types.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Username:     username,
		PasswordHash: string(hashed),
	})
}

// Authenticate verifies the password against the stored hash. The returned
// error does not distinguish an unknown username from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	return user, nil
}
