// Package sessions declares the repository contract for persisted login
// sessions and its PostgreSQL implementation.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/server/models"
)

// Repository defines operations for issuing, validating and revoking sessions.
type Repository interface {
	// Create stores a new session row.
	Create(ctx context.Context, session *models.Session) error

	// FindValid returns the session holding token whose expiry is not before
	// now, or common.ErrorNotFound.
	FindValid(ctx context.Context, token string, now time.Time) (*models.Session, error)

	// Delete removes the session with the given token and reports whether a
	// row existed. A missing token is not an error.
	Delete(ctx context.Context, token string) (bool, error)

	// DeleteByUser removes every session of userID.
	DeleteByUser(ctx context.Context, userID string) error
}
