package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pallet-service/internal/models"
)

// UserRepository acceso a los usuarios del sistema
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	CreateIfMissing(ctx context.Context, user *models.User) (bool, error)
}

const (
	queryGetUser = `
		SELECT username, password_hash FROM users WHERE username = $1
	`
	queryCreateUser = `
		INSERT INTO users (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByUsername devuelve nil si el usuario no existe
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, queryGetUser, username).Scan(&user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) CreateIfMissing(ctx context.Context, user *models.User) (bool, error) {
	result, err := r.db.ExecContext(ctx, queryCreateUser, user.Username, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("failed to create user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
