package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/models"
	"github.com/avelar/taskhub-be/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for account and credential
// operations.
type UserServiceProvider interface {
	Signup(ctx context.Context, email, password, name string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	store storage.UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

// NormalizeEmail applies the canonical email form used for uniqueness:
// trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account, hashing the password. At most one account
// may exist per normalized email.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (models.User, error) {
	email = NormalizeEmail(email)

	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return models.User{}, apperr.Conflict("User with this email already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, apperr.Internal("Error creating user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperr.Internal("Error creating user", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return models.User{}, apperr.Conflict("User with this email already exists")
		}
		return models.User{}, apperr.Internal("Error creating user", err)
	}
	return user, nil
}

// Authenticate verifies a user's credentials. An unknown email and a wrong
// password produce the same error so callers cannot probe which emails are
// registered.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.store.UserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.Unauthorized("Invalid credentials")
		}
		return models.User{}, apperr.Internal("Error during login", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, apperr.Unauthorized("Invalid credentials")
	}
	return user, nil
}

// GetByID retrieves a single user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, apperr.Internal("Error fetching user profile", err)
	}
	return user, nil
}
