package client

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/featurevote/internal/client/migrations"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
	"github.com/dmitrijs2005/featurevote/internal/filex"
)

// InitDatabase opens the local client database, creating its directory if
// needed, and brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	return dbx.Open(ctx, dsn, migrations.Migrations)
}
