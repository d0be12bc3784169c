package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/storage"
	"github.com/untoldecay/fossiluse/internal/types"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "fossil.db")
	store, err := New(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleDataset() *types.Dataset {
	ds := &types.Dataset{
		Columns: []string{types.ColEntity, "Code", types.ColYear,
			types.ColGasProduction, types.ColGasConsumption,
			types.ColOilProduction, types.ColOilConsumption,
			types.ColCoalProduction, types.ColCoalConsumption},
		Records: []types.Record{
			{Entity: "Germany", Year: 2010, Fuel: types.Fuel{GasProduction: 1.5, CoalConsumption: 900}, Extra: map[string]string{"Code": "DEU"}},
			{Entity: "Qatar", Year: 1999, Fuel: types.Fuel{GasProduction: 300, OilProduction: 12.25}, Extra: map[string]string{"Code": "QAT"}},
			{Entity: "Ukraine", Year: 2021, Fuel: types.Fuel{GasConsumption: 41}},
		},
	}
	classify.Apply(ds.Records)
	return ds
}

func TestLoadBeforeSave(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.LoadRecords(context.Background())
	if !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("LoadRecords() error = %v, want ErrNotInitialized", err)
	}

	n, err := store.RecordCount(context.Background())
	if err != nil {
		t.Fatalf("RecordCount() error = %v", err)
	}
	if n != 0 {
		t.Errorf("RecordCount() = %d, want 0", n)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	want := sampleDataset()

	if err := store.SaveDataset(ctx, want); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}

	got, err := store.LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	savedAt, err := store.GetMetadata(ctx, metaSavedAt)
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if savedAt == "" {
		t.Error("saved_at metadata not set")
	}
}

func TestSaveReplacesPreviousRun(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("first SaveDataset() error = %v", err)
	}

	second := sampleDataset()
	second.Records = second.Records[:1]
	if err := store.SaveDataset(ctx, second); err != nil {
		t.Fatalf("second SaveDataset() error = %v", err)
	}

	n, err := store.RecordCount(ctx)
	if err != nil {
		t.Fatalf("RecordCount() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("RecordCount() = %d, want 1", n)
	}

	records, err := store.LoadRecords(ctx)
	if err != nil {
		t.Fatalf("LoadRecords() error = %v", err)
	}
	if records[0].Entity != "Germany" || records[0].Region != types.RegionEurope {
		t.Errorf("LoadRecords()[0] = %+v", records[0])
	}
}

func TestSaveRejectsUntaggedRecords(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.SaveDataset(ctx, sampleDataset()); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}

	bad := &types.Dataset{
		Columns: []string{types.ColEntity, types.ColYear},
		Records: []types.Record{{Entity: "Nowhere", Year: 2000}},
	}
	if err := store.SaveDataset(ctx, bad); err == nil {
		t.Fatal("SaveDataset() with empty labels succeeded, want constraint error")
	}

	// The failed transaction must leave the previous run intact.
	n, err := store.RecordCount(ctx)
	if err != nil {
		t.Fatalf("RecordCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RecordCount() after failed save = %d, want 3", n)
	}
}

func TestMetadata(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	got, err := store.GetMetadata(ctx, "source")
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if got != "" {
		t.Errorf("GetMetadata(unset) = %q, want empty", got)
	}

	for _, v := range []string{"a.csv", "b.csv"} {
		if err := store.SetMetadata(ctx, "source", v); err != nil {
			t.Fatalf("SetMetadata() error = %v", err)
		}
	}
	got, err = store.GetMetadata(ctx, "source")
	if err != nil {
		t.Fatalf("GetMetadata() error = %v", err)
	}
	if got != "b.csv" {
		t.Errorf("GetMetadata() = %q, want b.csv", got)
	}
}

func TestInMemory(t *testing.T) {
	store, err := New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	defer store.Close()

	if err := store.SaveDataset(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("SaveDataset() error = %v", err)
	}
	if store.Path() != ":memory:" {
		t.Errorf("Path() = %q", store.Path())
	}
}
