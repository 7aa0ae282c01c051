package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repository interface {
	// Create fails with ErrUsernameTaken when the username exists.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
