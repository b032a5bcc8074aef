// Package repomanager opens the store databases, applies their migrations and
// hands out repositories bound to a connection or transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/discussion"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/messages"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/users"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Messages(db dbx.DBTX) messages.Repository
	Discussion(db dbx.DBTX) discussion.Repository
}
