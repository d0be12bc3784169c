// Package storage tests for interface compliance.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/untoldecay/fossiluse/internal/types"
)

// Compile-time interface conformance check.
// The real sqlite conformance tests live in the sqlite package.
var _ Storage = (*mockStorage)(nil)

type mockStorage struct {
	ds   *types.Dataset
	meta map[string]string
}

func (m *mockStorage) SaveDataset(ctx context.Context, ds *types.Dataset) error {
	m.ds = ds
	return nil
}

func (m *mockStorage) LoadDataset(ctx context.Context) (*types.Dataset, error) {
	if m.ds == nil {
		return nil, ErrNotInitialized
	}
	return m.ds, nil
}

func (m *mockStorage) LoadRecords(ctx context.Context) ([]types.Record, error) {
	ds, err := m.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

func (m *mockStorage) RecordCount(ctx context.Context) (int, error) {
	if m.ds == nil {
		return 0, nil
	}
	return m.ds.Len(), nil
}

func (m *mockStorage) SetMetadata(ctx context.Context, key, value string) error {
	if m.meta == nil {
		m.meta = map[string]string{}
	}
	m.meta[key] = value
	return nil
}

func (m *mockStorage) GetMetadata(ctx context.Context, key string) (string, error) {
	return m.meta[key], nil
}

func (m *mockStorage) Path() string          { return ":memory:" }
func (m *mockStorage) Close() error          { return nil }
func (m *mockStorage) UnderlyingDB() *sql.DB { return nil }

func TestErrNotInitializedWrapping(t *testing.T) {
	var s Storage = &mockStorage{}
	_, err := s.LoadRecords(context.Background())
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("LoadRecords() error = %v, want ErrNotInitialized", err)
	}

	wrapped := fmt.Errorf("chart: %w", err)
	if !errors.Is(wrapped, ErrNotInitialized) {
		t.Errorf("wrapped error lost sentinel: %v", wrapped)
	}
}
