// Package store provides the key-value backends behind ledger.Repository.
package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/spend/internal/config"
	"github.com/MrJamesThe3rd/spend/internal/database"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

// Backend is a repository that holds resources until closed.
type Backend interface {
	ledger.Repository
	io.Closer
}

// Open builds the backend selected by cfg.Storage.Backend.
func Open(cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		slog.Warn("using in-memory storage, data will not survive a restart")
		return NewMemory(), nil

	case config.BackendFile:
		return OpenFile(cfg.Storage.FilePath)

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}

		if err := database.Migrate(database.DialectSQLite, cfg.Storage.SQLitePath); err != nil {
			db.Close()
			return nil, err
		}

		return NewSQL(db, database.DialectSQLite)

	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		if err := database.Migrate(database.DialectPostgres, cfg.ConnectionString()); err != nil {
			db.Close()
			return nil, err
		}

		return NewSQL(db, database.DialectPostgres)
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
