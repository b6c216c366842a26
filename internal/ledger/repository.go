package ledger

import (
	"context"
	"errors"
)

// Storage keys. Each holds a JSON array.
const (
	KeyExpenses     = "expenses"
	KeyTransactions = "transactions"
)

// ErrStorage wraps every failure coming from the persistence backend.
var ErrStorage = errors.New("storage error")

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=ledger

// Repository is a device-local key-value store holding JSON documents.
type Repository interface {
	// Get returns the stored value. found is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Begin(ctx context.Context) (Batch, error)
}

// Batch groups writes so that either all of them persist or none do.
type Batch interface {
	Set(ctx context.Context, key string, value []byte) error
	Commit() error
	Rollback() error
}
