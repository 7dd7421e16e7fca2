// Package tasks declares the repository contract for per-user task records.
package tasks

import (
	"context"

	"github.com/AnandRajBind/Task-Management/internal/server/models"
)

// ListFilter narrows and pages a task listing. Zero values mean "no filter";
// Page and Limit are normalized by the service layer before reaching here.
type ListFilter struct {
	Status models.TaskStatus
	Search string
	Page   int
	Limit  int
}

type Repository interface {
	// Create inserts a new task and returns it with generated id and
	// timestamps.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// List returns the user's tasks matching the filter, newest first,
	// along with the total match count before paging.
	List(ctx context.Context, userID string, filter ListFilter) ([]*models.Task, int64, error)

	// GetByID returns the task only if it belongs to userID,
	// or common.ErrNotFound.
	GetByID(ctx context.Context, id, userID string) (*models.Task, error)

	// Update persists title, description and status of a task owned by
	// userID and returns the updated row, or common.ErrNotFound.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// Delete removes the task if it belongs to userID,
	// or returns common.ErrNotFound.
	Delete(ctx context.Context, id, userID string) error
}
