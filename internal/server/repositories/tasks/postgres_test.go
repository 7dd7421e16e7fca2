package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskRows(tasks ...*models.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "status", "created_at", "updated_at"})
	for _, task := range tasks {
		rows.AddRow(task.ID, task.UserID, task.Title, task.Description, string(task.Status), task.CreatedAt, task.UpdatedAt)
	}
	return rows
}

func TestCreate_GeneratesID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+tasks`).
		WithArgs(sqlmock.AnyArg(), "u-1", "Buy milk", "", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	task := &models.Task{UserID: "u-1", Title: "Buy milk", Status: models.TaskStatusPending}
	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id, got empty")
	}
}

func TestList_ReturnsTotalAndPage(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+count\(\*\)\s+FROM\s+tasks`).
		WithArgs("u-1", "PENDING", "milk").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,.*FROM\s+tasks.*ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs("u-1", "PENDING", "milk", 10, 10).
		WillReturnRows(taskRows(
			&models.Task{ID: "t-11", UserID: "u-1", Title: "Buy milk", Status: models.TaskStatusPending, CreatedAt: now, UpdatedAt: now},
			&models.Task{ID: "t-12", UserID: "u-1", Title: "More milk", Status: models.TaskStatusPending, CreatedAt: now, UpdatedAt: now},
		))

	got, total, err := repo.List(context.Background(), "u-1", ListFilter{
		Status: models.TaskStatusPending, Search: "milk", Page: 2, Limit: 10,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 12 || len(got) != 2 {
		t.Fatalf("unexpected result: total=%d len=%d", total, len(got))
	}
}

func TestList_EscapesSearchWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// % and _ in the search term must reach the database escaped, so they
	// match literally instead of acting as pattern metacharacters
	mock.ExpectQuery(`(?s)^\s*SELECT\s+count\(\*\)\s+FROM\s+tasks`).
		WithArgs("u-1", "", `50\% off\_sale`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,.*FROM\s+tasks`).
		WithArgs("u-1", "", `50\% off\_sale`, 10, 0).
		WillReturnRows(taskRows(
			&models.Task{ID: "t-1", UserID: "u-1", Title: "50% off_sale", Status: models.TaskStatusPending, CreatedAt: now, UpdatedAt: now},
		))

	got, total, err := repo.List(context.Background(), "u-1", ListFilter{
		Search: "50% off_sale", Page: 1, Limit: 10,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("unexpected result: total=%d len=%d", total, len(got))
	}
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("t-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "t-1", "intruder")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*UPDATE\s+tasks`).
		WithArgs("t-1", "u-9", "Title", "", "PENDING").
		WillReturnError(sql.ErrNoRows)

	task := &models.Task{ID: "t-1", UserID: "u-9", Title: "Title", Status: models.TaskStatusPending}
	_, err := repo.Update(context.Background(), task)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+tasks`).
		WithArgs("t-1", "u-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "t-1", "u-9")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+tasks`).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1", "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
