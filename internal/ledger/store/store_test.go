package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spend/internal/config"
	"github.com/MrJamesThe3rd/spend/internal/ledger/store"
)

func backends(t *testing.T) map[string]func(t *testing.T) store.Backend {
	t.Helper()

	b := map[string]func(t *testing.T) store.Backend{
		"Memory": func(t *testing.T) store.Backend {
			return store.NewMemory()
		},
		"File": func(t *testing.T) store.Backend {
			f, err := store.OpenFile(filepath.Join(t.TempDir(), "nested", "spend.json"))
			require.NoError(t, err)

			return f
		},
		"SQLite": func(t *testing.T) store.Backend {
			cfg := &config.Config{}
			cfg.Storage.Backend = config.BackendSQLite
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "spend.db")

			s, err := store.Open(cfg)
			require.NoError(t, err)

			return s
		},
	}

	if dsn := os.Getenv("SPEND_TEST_POSTGRES_DSN"); dsn != "" {
		b["Postgres"] = func(t *testing.T) store.Backend {
			s, err := openPostgres(dsn)
			require.NoError(t, err)

			return s
		}
	}

	return b
}

func TestBackends_Contract(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, found, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found, "absent keys report not found")

			batch, err := s.Begin(ctx)
			require.NoError(t, err)
			require.NoError(t, batch.Set(ctx, "expenses", []byte(`[{"name":"Coffee"}]`)))
			require.NoError(t, batch.Set(ctx, "transactions", []byte(`[]`)))
			require.NoError(t, batch.Commit())
			_ = batch.Rollback()

			got, found, err := s.Get(ctx, "expenses")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"name":"Coffee"}]`, string(got))

			// A rolled back batch leaves nothing behind.
			batch, err = s.Begin(ctx)
			require.NoError(t, err)
			require.NoError(t, batch.Set(ctx, "expenses", []byte(`[]`)))
			require.NoError(t, batch.Set(ctx, "transactions", []byte(`[{"kind":"created"}]`)))
			require.NoError(t, batch.Rollback())

			got, _, err = s.Get(ctx, "expenses")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"name":"Coffee"}]`, string(got))

			got, _, err = s.Get(ctx, "transactions")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))

			// Overwrites replace the previous value.
			batch, err = s.Begin(ctx)
			require.NoError(t, err)
			require.NoError(t, batch.Set(ctx, "expenses", []byte(`[]`)))
			require.NoError(t, batch.Commit())

			got, _, err = s.Get(ctx, "expenses")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))
		})
	}
}

func TestFile_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "spend.json")

	f, err := store.OpenFile(path)
	require.NoError(t, err)

	batch, err := f.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.Set(ctx, "expenses", []byte(`[{"name":"Rent"}]`)))
	require.NoError(t, batch.Commit())

	reopened, err := store.OpenFile(path)
	require.NoError(t, err)

	got, found, err := reopened.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"name":"Rent"}]`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spend.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.OpenFile(path)
	assert.Error(t, err)
}

func TestFile_InvalidValueFailsCommit(t *testing.T) {
	ctx := context.Background()

	f, err := store.OpenFile(filepath.Join(t.TempDir(), "spend.json"))
	require.NoError(t, err)

	batch, err := f.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.Set(ctx, "expenses", []byte(`{broken`)))
	assert.Error(t, batch.Commit())

	_, found, err := f.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.False(t, found, "failed commit must not change state")
}

func TestMemory_BatchDone(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	batch, err := m.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, batch.Commit())

	assert.Error(t, batch.Set(ctx, "expenses", []byte(`[]`)))
	assert.Error(t, batch.Commit())
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Backend = "redis"

	_, err := store.Open(cfg)
	assert.Error(t, err)
}
