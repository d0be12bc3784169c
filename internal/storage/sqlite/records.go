package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/untoldecay/fossiluse/internal/storage"
	"github.com/untoldecay/fossiluse/internal/types"
)

const (
	metaColumns = "columns"
	metaSavedAt = "saved_at"
)

const recordColumns = `entity, year,
	gas_production, gas_consumption,
	oil_production, oil_consumption,
	coal_production, coal_consumption,
	organization, region, euru, extra`

// SaveDataset replaces the stored records with ds in a single transaction.
func (s *SQLiteStorage) SaveDataset(ctx context.Context, ds *types.Dataset) error {
	columns, err := json.Marshal(ds.Columns)
	if err != nil {
		return fmt.Errorf("failed to encode columns: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return wrapDBError("clear records", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (seq, `+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return wrapDBError("prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range ds.Records {
		r := &ds.Records[i]
		extra, err := encodeExtra(r.Extra)
		if err != nil {
			return fmt.Errorf("record %d (%s %d): %w", i, r.Entity, r.Year, err)
		}
		_, err = stmt.ExecContext(ctx, i, r.Entity, r.Year,
			r.GasProduction, r.GasConsumption,
			r.OilProduction, r.OilConsumption,
			r.CoalProduction, r.CoalConsumption,
			string(r.Organization), string(r.Region), string(r.EuroBloc), extra)
		if err != nil {
			return wrapDBError(fmt.Sprintf("insert record %d (%s %d)", i, r.Entity, r.Year), err)
		}
	}

	if err := setMetadata(ctx, tx, metaColumns, string(columns)); err != nil {
		return err
	}
	if err := setMetadata(ctx, tx, metaSavedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapDBError("commit", err)
	}
	return nil
}

// LoadDataset returns the stored records with the column layout they were
// saved with.
func (s *SQLiteStorage) LoadDataset(ctx context.Context) (*types.Dataset, error) {
	raw, err := s.GetMetadata(ctx, metaColumns)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, storage.ErrNotInitialized
	}
	var columns []string
	if err := json.Unmarshal([]byte(raw), &columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records ORDER BY seq`)
	if err != nil {
		return nil, wrapDBError("query records", err)
	}
	defer func() { _ = rows.Close() }()

	ds := &types.Dataset{Columns: columns}
	for rows.Next() {
		var (
			r     types.Record
			org   string
			reg   string
			euru  string
			extra string
		)
		err := rows.Scan(&r.Entity, &r.Year,
			&r.GasProduction, &r.GasConsumption,
			&r.OilProduction, &r.OilConsumption,
			&r.CoalProduction, &r.CoalConsumption,
			&org, &reg, &euru, &extra)
		if err != nil {
			return nil, wrapDBError("scan record", err)
		}
		r.Organization = types.Organization(org)
		r.Region = types.Region(reg)
		r.EuroBloc = types.EuroBloc(euru)
		if r.Extra, err = decodeExtra(extra); err != nil {
			return nil, fmt.Errorf("record %s %d: %w", r.Entity, r.Year, err)
		}
		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate records", err)
	}
	return ds, nil
}

// LoadRecords returns the stored records in the order they were saved.
func (s *SQLiteStorage) LoadRecords(ctx context.Context) ([]types.Record, error) {
	ds, err := s.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Records, nil
}

// RecordCount returns the number of stored records.
func (s *SQLiteStorage) RecordCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, wrapDBError("count records", err)
	}
	return n, nil
}

// SetMetadata stores a bookkeeping value.
func (s *SQLiteStorage) SetMetadata(ctx context.Context, key, value string) error {
	return setMetadata(ctx, s.db, key, value)
}

// GetMetadata returns a bookkeeping value, or "" when the key is unset.
func (s *SQLiteStorage) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", wrapDBError("get metadata "+key, err)
	}
	return value, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setMetadata(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return wrapDBError("set metadata "+key, err)
}

func encodeExtra(extra map[string]string) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("failed to encode extra columns: %w", err)
	}
	return string(b), nil
}

func decodeExtra(raw string) (map[string]string, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	var extra map[string]string
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return nil, fmt.Errorf("failed to decode extra columns: %w", err)
	}
	return extra, nil
}
