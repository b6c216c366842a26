package store_test

import (
	"github.com/MrJamesThe3rd/spend/internal/database"
	"github.com/MrJamesThe3rd/spend/internal/ledger/store"
)

// openPostgres connects straight to a DSN so tests do not depend on DB_* settings.
func openPostgres(dsn string) (store.Backend, error) {
	db, err := database.New(dsn)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(database.DialectPostgres, dsn); err != nil {
		db.Close()
		return nil, err
	}

	return store.NewSQL(db, database.DialectPostgres)
}
