package store

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

var errBatchDone = errors.New("batch already committed or rolled back")

// Memory keeps everything in process. Nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	return bytes.Clone(v), true, nil
}

func (m *Memory) Begin(_ context.Context) (ledger.Batch, error) {
	return &pendingWrites{
		writes: make(map[string][]byte),
		apply: func(writes map[string][]byte) error {
			m.mu.Lock()
			defer m.mu.Unlock()

			for k, v := range writes {
				m.data[k] = v
			}

			return nil
		},
	}, nil
}

func (m *Memory) Close() error { return nil }

// pendingWrites buffers Set calls until Commit hands them to apply in one go.
type pendingWrites struct {
	writes map[string][]byte
	apply  func(map[string][]byte) error
	done   bool
}

func (b *pendingWrites) Set(ctx context.Context, key string, value []byte) error {
	if b.done {
		return errBatchDone
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	b.writes[key] = bytes.Clone(value)

	return nil
}

func (b *pendingWrites) Commit() error {
	if b.done {
		return errBatchDone
	}

	b.done = true

	return b.apply(b.writes)
}

// Rollback discards buffered writes. It is a no-op after Commit.
func (b *pendingWrites) Rollback() error {
	b.done = true
	b.writes = nil

	return nil
}
