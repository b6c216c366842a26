package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

// File persists all keys in one JSON document. Commits replace the file
// atomically through a temp file and rename.
type File struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	f := &File{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(raw) == 0 {
		return f, nil
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return f, nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), v...), true, nil
}

func (f *File) Begin(_ context.Context) (ledger.Batch, error) {
	return &pendingWrites{writes: make(map[string][]byte), apply: f.apply}, nil
}

func (f *File) Close() error { return nil }

func (f *File) apply(writes map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := maps.Clone(f.data)
	for k, v := range writes {
		next[k] = json.RawMessage(v)
	}

	if err := f.flush(next); err != nil {
		return err
	}

	f.data = next

	return nil
}

func (f *File) flush(data map[string]json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")

	if err := enc.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding data: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}

	return nil
}
