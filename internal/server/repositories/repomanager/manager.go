package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/usermgmt/internal/dbx"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/accounts"
)

// RepositoryManager vends repository implementations bound to a database
// handle (connection or transaction) and exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
