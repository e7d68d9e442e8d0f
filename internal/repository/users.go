// Package repository provides persistence implementations for the API
// server using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ilyakh/ShopKeeper/internal/models"
)

var (
	// ErrUserExists is returned when a username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user and returns the assigned id.
// A duplicate username yields ErrUserExists.
func (s *PostgresUserRepository) CreateUser(ctx context.Context, username, email string, passwordHash []byte) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("CreateUser: %w", err)
	}
	return id, nil
}

// GetUserByUsername fetches a user by login name.
// A missing user yields ErrUserNotFound.
func (s *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, username, email, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return &u, nil
}
