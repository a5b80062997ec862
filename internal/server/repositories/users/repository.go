// Package users declares the repository contract for user records and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/useraccounts/internal/server/models"
)

// Repository defines persistence operations on users.
type Repository interface {
	// Create inserts user. A duplicate pseudo yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns common.ErrorNotFound when no user has the given id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)

	// Update overwrites the mutable fields of the user with user.ID.
	// A missing id is not an error.
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user with the given id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}
