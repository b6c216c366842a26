package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/spend/internal/database"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

type queries struct {
	get string
	set string
}

var dialectQueries = map[database.Dialect]queries{
	database.DialectSQLite: {
		get: `SELECT value FROM kv WHERE key = ?`,
		set: `
			INSERT INTO kv (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`,
	},
	database.DialectPostgres: {
		get: `SELECT value FROM kv WHERE key = $1`,
		set: `
			INSERT INTO kv (key, value, updated_at)
			VALUES ($1, $2::jsonb, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`,
	},
}

// SQL stores each key as a row of the kv table. A batch is a database transaction.
type SQL struct {
	db *sql.DB
	q  queries
}

func NewSQL(db *sql.DB, dialect database.Dialect) (*SQL, error) {
	q, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	return &SQL{db: db, q: q}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}

	return value, true, nil
}

func (s *SQL) Begin(ctx context.Context) (ledger.Batch, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &sqlBatch{tx: tx, set: s.q.set}, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

type sqlBatch struct {
	tx  *sql.Tx
	set string
}

func (b *sqlBatch) Set(ctx context.Context, key string, value []byte) error {
	if _, err := b.tx.ExecContext(ctx, b.set, key, string(value)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return nil
}

func (b *sqlBatch) Commit() error   { return b.tx.Commit() }
func (b *sqlBatch) Rollback() error { return b.tx.Rollback() }
