package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lightway/internal/dbx"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/applause"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/contents"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/identities"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/letters"
)

// RepositoryManager builds repositories bound to a *sql.DB or *sql.Tx, so
// services can run the same repository code inside and outside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Letters(db dbx.DBTX) letters.Repository
	Identities(db dbx.DBTX) identities.Repository
	Contents(db dbx.DBTX) contents.Repository
	Applause(db dbx.DBTX) applause.Repository
}
