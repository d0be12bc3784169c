// Package storage defines the interface for classified dataset storage backends.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/untoldecay/fossiluse/internal/types"
)

// ErrNotInitialized is returned when reading from a database that no run
// has written a dataset into yet.
var ErrNotInitialized = errors.New("database not initialized")

// Storage persists classified datasets.
//
// SaveDataset replaces whatever the store held before; a store only ever
// holds the output of the latest run. LoadDataset and LoadRecords return
// ErrNotInitialized until the first SaveDataset.
type Storage interface {
	SaveDataset(ctx context.Context, ds *types.Dataset) error
	LoadDataset(ctx context.Context) (*types.Dataset, error)
	LoadRecords(ctx context.Context) ([]types.Record, error)
	RecordCount(ctx context.Context) (int, error)

	// SetMetadata/GetMetadata store run bookkeeping (source path, timestamp).
	SetMetadata(ctx context.Context, key, value string) error
	GetMetadata(ctx context.Context, key string) (string, error)

	Path() string
	Close() error

	// UnderlyingDB returns the underlying *sql.DB connection.
	// Callers must not close it.
	UnderlyingDB() *sql.DB
}
