package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/repomanager"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/tasks"
)

const (
	maxTitleLength = 200
	defaultPage    = 1
	defaultLimit   = 10
)

// TaskQuery is a raw listing request before normalization.
type TaskQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// TaskList is the result of a paged listing.
type TaskList struct {
	Tasks      []*models.Task `json:"tasks"`
	Pagination Pagination     `json:"pagination"`
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskService implements per-user task management.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if len(title) > maxTitleLength {
		return fmt.Errorf("%w: title too long", common.ErrValidation)
	}
	return nil
}

func parseStatus(s string) (models.TaskStatus, error) {
	status := models.TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", common.ErrValidation, s)
	}
	return status, nil
}

// Create stores a new task for userID. An empty status defaults to PENDING.
func (s *TaskService) Create(ctx context.Context, userID, title, description, status string) (*models.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	taskStatus := models.TaskStatusPending
	if status != "" {
		parsed, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		taskStatus = parsed
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      taskStatus,
	}

	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// List returns one page of the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string, query TaskQuery) (*TaskList, error) {

	filter := tasks.ListFilter{
		Page:   query.Page,
		Limit:  query.Limit,
		Search: query.Search,
	}
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if query.Status != "" {
		status, err := parseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	list, total, err := s.repomanager.Tasks(s.db).List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &TaskList{
		Tasks: list,
		Pagination: Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// Get returns a single task owned by userID.
func (s *TaskService) Get(ctx context.Context, id, userID string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).GetByID(ctx, id, userID)
}

// Update applies a partial update to a task owned by userID.
func (s *TaskService) Update(ctx context.Context, id, userID string, update TaskUpdate) (*models.Task, error) {

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		status, err := parseStatus(*update.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}

	return repo.Update(ctx, task)
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	return s.repomanager.Tasks(s.db).Delete(ctx, id, userID)
}

// ToggleStatus advances a task along PENDING -> IN_PROGRESS -> COMPLETED ->
// PENDING.
func (s *TaskService) ToggleStatus(ctx context.Context, id, userID string) (*models.Task, error) {

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.Status = task.Status.Next()
	return repo.Update(ctx, task)
}
