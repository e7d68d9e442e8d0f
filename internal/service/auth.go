// Package service provides business logic for authentication and the
// product catalog, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/ilyakh/ShopKeeper/internal/auth"
	"github.com/ilyakh/ShopKeeper/internal/models"
	"github.com/ilyakh/ShopKeeper/internal/repository"
)

// ErrInvalidCredentials is returned when the username or password does
// not match a stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when the registration username is taken.
var ErrUserExists = errors.New("user already exists")

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser inserts a new user and returns the assigned id.
	CreateUser(ctx context.Context, username, email string, passwordHash []byte) (int64, error)
	// GetUserByUsername fetches a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID int64, username string) (string, error)
}

// AuthService implements registration and sign-in.
type AuthService struct {
	// repo performs the data-layer operations.
	repo UserRepository
	// tokens issues bearer tokens on success.
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password and returns
// the new id and a signed token. A taken username yields ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (int64, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, "", err
	}

	id, err := s.repo.CreateUser(ctx, username, email, hash)
	if errors.Is(err, repository.ErrUserExists) {
		return 0, "", ErrUserExists
	}
	if err != nil {
		return 0, "", err
	}

	token, err := s.tokens.Generate(id, username)
	if err != nil {
		return 0, "", err
	}
	return id, token, nil
}

// Login verifies the credentials and returns the user id and a signed
// token. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (int64, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return 0, "", ErrInvalidCredentials
	}
	if err != nil {
		return 0, "", err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return 0, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return 0, "", err
	}
	return user.ID, token, nil
}
