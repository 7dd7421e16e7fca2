package repomanager

import (
	"context"
	"database/sql"

	"github.com/AnandRajBind/Task-Management/internal/dbx"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/refreshtokens"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/tasks"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to an arbitrary
// DBTX, so services can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
