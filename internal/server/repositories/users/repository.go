package users

import (
	"context"

	"github.com/AnandRajBind/Task-Management/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	// A duplicate email yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email (exact match),
	// or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
