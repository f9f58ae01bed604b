package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/h4ks-com/expense-tracker/internal/models"
	"github.com/h4ks-com/expense-tracker/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *TokenService
}

func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account. The email lookup only short-circuits the common
// case; concurrent registrations are settled by the store's unique index.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, ErrValidation
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed session token. Unknown
// users and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
