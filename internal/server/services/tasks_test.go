package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/dbx"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/refreshtokens"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/tasks"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

type fakeTasksRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.Task
	nextID int

	lastFilter tasks.ListFilter
	listOut    []*models.Task
	listTotal  int64
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{byID: map[string]*models.Task{}}
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task.ID = "t-" + string(rune('0'+f.nextID))
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	f.byID[task.ID] = task
	return task, nil
}

func (f *fakeTasksRepo) List(ctx context.Context, userID string, filter tasks.ListFilter) ([]*models.Task, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.listOut, f.listTotal, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.byID[id]
	if !ok || task.UserID != userID {
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, common.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	f.byID[task.ID] = task
	return task, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.byID[id]
	if !ok || task.UserID != userID {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTaskRepoManager struct {
	t *fakeTasksRepo
}

func (m *fakeTaskRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeTaskRepoManager) Users(db dbx.DBTX) users.Repository           { return nil }
func (m *fakeTaskRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return nil
}
func (m *fakeTaskRepoManager) Tasks(db dbx.DBTX) tasks.Repository { return m.t }

func newTaskService(t *testing.T) (*TaskService, *fakeTasksRepo) {
	t.Helper()
	repo := newFakeTasksRepo()
	return NewTaskService(nil, &fakeTaskRepoManager{t: repo}), repo
}

func TestTaskCreate_DefaultsToPending(t *testing.T) {
	svc, _ := newTaskService(t)

	task, err := svc.Create(context.Background(), "u-1", "Buy milk", "", "")
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusPending, task.Status)
}

func TestTaskCreate_Validation(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u-1", "", "", "")
	require.ErrorIs(t, err, common.ErrValidation)

	long := make([]byte, maxTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.Create(ctx, "u-1", string(long), "", "")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(ctx, "u-1", "ok", "", "DONE")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTaskList_NormalizesPaging(t *testing.T) {
	svc, repo := newTaskService(t)
	repo.listTotal = 25

	list, err := svc.List(context.Background(), "u-1", TaskQuery{})
	require.NoError(t, err)

	require.Equal(t, 1, repo.lastFilter.Page)
	require.Equal(t, 10, repo.lastFilter.Limit)
	require.Equal(t, int64(25), list.Pagination.Total)
	require.Equal(t, 3, list.Pagination.TotalPages)
}

func TestTaskList_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTaskService(t)

	_, err := svc.List(context.Background(), "u-1", TaskQuery{Status: "DONE"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestTaskUpdate_Partial(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u-1", "Buy milk", "2 liters", "")
	require.NoError(t, err)

	newTitle := "Buy oat milk"
	updated, err := svc.Update(ctx, task.ID, "u-1", TaskUpdate{Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.Equal(t, "2 liters", updated.Description, "unset fields stay unchanged")
}

func TestTaskOwnershipIsolation(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u-1", "Private", "", "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, task.ID, "u-2")
	require.ErrorIs(t, err, common.ErrNotFound)
	err = svc.Delete(ctx, task.ID, "u-2")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.Update(ctx, task.ID, "u-2", TaskUpdate{})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTaskToggle_Cycle(t *testing.T) {
	svc, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u-1", "Cycle me", "", "")
	require.NoError(t, err)

	want := []models.TaskStatus{
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
		models.TaskStatusPending,
	}
	for _, status := range want {
		task, err = svc.ToggleStatus(ctx, task.ID, "u-1")
		require.NoError(t, err)
		require.Equal(t, status, task.Status)
	}
}
