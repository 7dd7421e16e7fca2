// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID expiring at expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// FindWithUser looks up a refresh token by its token string, joined with
	// the owning user. Returns common.ErrNotFound when the token is absent.
	FindWithUser(ctx context.Context, token string) (*models.StoredRefreshToken, error)

	// Delete removes refresh token rows matching the token string and
	// reports how many rows were removed. Deleting a non-existent token is
	// not an error; callers that need single-use semantics check the count.
	Delete(ctx context.Context, token string) (int64, error)
}
