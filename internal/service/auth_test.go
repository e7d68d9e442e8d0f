package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ilyakh/ShopKeeper/internal/auth"
	"github.com/ilyakh/ShopKeeper/internal/models"
	"github.com/ilyakh/ShopKeeper/internal/repository"
)

// fakeUserRepo implements UserRepository for testing.
type fakeUserRepo struct {
	createID   int64
	createErr  error
	user       *models.User
	getErr     error
	storedHash []byte
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, username, email string, passwordHash []byte) (int64, error) {
	f.storedHash = passwordHash
	return f.createID, f.createErr
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.user, f.getErr
}

// fakeIssuer implements TokenIssuer for testing.
type fakeIssuer struct {
	token string
	err   error
}

func (f *fakeIssuer) Generate(userID int64, username string) (string, error) {
	return f.token, f.err
}

func TestRegister_Success(t *testing.T) {
	repo := &fakeUserRepo{createID: 7}
	s := NewAuthService(repo, &fakeIssuer{token: "tok"})

	id, token, err := s.Register(context.Background(), "alice", "pw", "a@b.c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 || token != "tok" {
		t.Errorf("unexpected result: id=%d token=%q", id, token)
	}
	if !auth.CheckPassword("pw", repo.storedHash) {
		t.Errorf("stored hash does not match password")
	}
	if auth.CheckPassword("other", repo.storedHash) {
		t.Errorf("stored hash matches wrong password")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s := NewAuthService(&fakeUserRepo{createErr: repository.ErrUserExists}, &fakeIssuer{})

	_, _, err := s.Register(context.Background(), "alice", "pw", "")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	repo := &fakeUserRepo{user: &models.User{ID: 7, Username: "alice", PasswordHash: hash}}
	s := NewAuthService(repo, &fakeIssuer{token: "tok"})

	id, token, err := s.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 || token != "tok" {
		t.Errorf("unexpected result: id=%d token=%q", id, token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	repo := &fakeUserRepo{user: &models.User{ID: 7, Username: "alice", PasswordHash: hash}}
	s := NewAuthService(repo, &fakeIssuer{token: "tok"})

	_, _, err = s.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	s := NewAuthService(&fakeUserRepo{getErr: repository.ErrUserNotFound}, &fakeIssuer{})

	_, _, err := s.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RepoError(t *testing.T) {
	s := NewAuthService(&fakeUserRepo{getErr: errors.New("db fail")}, &fakeIssuer{})

	_, _, err := s.Login(context.Background(), "alice", "pw")
	if err == nil {
		t.Errorf("expected error, got nil")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("infrastructure failure must not map to ErrInvalidCredentials")
	}
}
