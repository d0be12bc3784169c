// Package memory implements the storage interface in process memory.
//
// It backs `fossil run` when no database is configured and is handy in tests
// that need a Storage without touching the filesystem.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"sync"

	"github.com/untoldecay/fossiluse/internal/storage"
	"github.com/untoldecay/fossiluse/internal/types"
)

// MemoryStorage holds the latest classified dataset in memory
type MemoryStorage struct {
	mu sync.RWMutex

	columns  []string
	records  []types.Record
	metadata map[string]string
	saved    bool
	closed   bool

	path string // informational only
}

var _ storage.Storage = (*MemoryStorage)(nil)

// New creates an empty in-memory store. path is only reported by Path.
func New(path string) *MemoryStorage {
	return &MemoryStorage{
		metadata: make(map[string]string),
		path:     path,
	}
}

// SaveDataset replaces the stored dataset with a copy of ds.
func (m *MemoryStorage) SaveDataset(ctx context.Context, ds *types.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range ds.Records {
		r := &ds.Records[i]
		if !r.Organization.IsValid() || !r.Region.IsValid() || !r.EuroBloc.IsValid() {
			return fmt.Errorf("record %d (%s %d) is not classified", i, r.Entity, r.Year)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("save dataset: store is closed")
	}
	m.columns = append([]string(nil), ds.Columns...)
	m.records = copyRecords(ds.Records)
	m.saved = true
	return nil
}

// LoadDataset returns a copy of the stored dataset.
func (m *MemoryStorage) LoadDataset(ctx context.Context) (*types.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.saved {
		return nil, storage.ErrNotInitialized
	}
	return &types.Dataset{
		Columns: append([]string(nil), m.columns...),
		Records: copyRecords(m.records),
	}, nil
}

// LoadRecords returns a copy of the stored records in input order.
func (m *MemoryStorage) LoadRecords(ctx context.Context) ([]types.Record, error) {
	ds, err := m.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

// RecordCount returns the number of stored records (0 before any save).
func (m *MemoryStorage) RecordCount(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MemoryStorage) SetMetadata(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}

// GetMetadata returns "" for unset keys.
func (m *MemoryStorage) GetMetadata(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

func (m *MemoryStorage) Path() string {
	return m.path
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// UnderlyingDB returns nil; there is no database connection.
func (m *MemoryStorage) UnderlyingDB() *sql.DB {
	return nil
}

func copyRecords(in []types.Record) []types.Record {
	out := make([]types.Record, len(in))
	copy(out, in)
	for i := range out {
		if out[i].Extra != nil {
			out[i].Extra = maps.Clone(out[i].Extra)
		}
	}
	return out
}
