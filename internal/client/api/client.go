// Package api implements the HTTP client for the task server. All
// authenticated calls go through a silent refresh: on the first 401 the
// client spends its stored refresh token to obtain a new pair and retries
// the request exactly once.
package api

import (
	"context"

	"github.com/AnandRajBind/Task-Management/internal/client/models"
)

// ListQuery carries the optional filters for ListTasks.
type ListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type Client interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	ListTasks(ctx context.Context, query ListQuery) (*models.TaskList, error)
	CreateTask(ctx context.Context, title, description string) (*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error)
	ToggleTask(ctx context.Context, id string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Health(ctx context.Context) error
}
