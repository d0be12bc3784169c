package dataset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"github.com/untoldecay/fossiluse/internal/types"
)

const header = "Entity,Code,Year,Gas production,Gas consumption,Coal production,Coal consumption,Oil production,Oil consumption\n"

func loadString(t *testing.T, body string) *types.Dataset {
	t.Helper()
	ds, err := Load(strings.NewReader(header + body))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return ds
}

func TestLoadFillsMissingValues(t *testing.T) {
	ds := loadString(t, "Germany,DEU,2015,1,100,,NaN,3,4\n")
	if ds.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", ds.Len())
	}
	r := ds.Records[0]
	if r.Entity != "Germany" || r.Year != 2015 {
		t.Errorf("unexpected identity: %+v", r)
	}
	if r.GasProduction != 1 || r.GasConsumption != 100 || r.OilProduction != 3 || r.OilConsumption != 4 {
		t.Errorf("unexpected values: %+v", r.Fuel)
	}
	if r.CoalProduction != 0 || r.CoalConsumption != 0 {
		t.Errorf("missing coal values not zero-filled: %+v", r.Fuel)
	}
	if r.Extra["Code"] != "DEU" {
		t.Errorf("Code = %q, want DEU", r.Extra["Code"])
	}
	if !r.Labels.IsZero() {
		t.Errorf("labels should be empty before tagging: %+v", r.Labels)
	}
}

func TestLoadFillsMissingPassThroughAndYear(t *testing.T) {
	ds := loadString(t, "Qatar,,,1,1,1,1,1,1\nQatar,QAT,1999.0,1,1,1,1,1,1\n")
	if ds.Records[0].Extra["Code"] != "0" {
		t.Errorf("empty Code should be filled with 0, got %q", ds.Records[0].Extra["Code"])
	}
	if ds.Records[0].Year != 0 {
		t.Errorf("missing year should be 0, got %d", ds.Records[0].Year)
	}
	if ds.Records[1].Year != 1999 {
		t.Errorf("integral float year should parse, got %d", ds.Records[1].Year)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		missing bool
	}{
		{
			name:    "empty input",
			input:   "",
			missing: true,
		},
		{
			name:    "missing Year column",
			input:   "Entity,Gas production,Gas consumption,Coal production,Coal consumption,Oil production,Oil consumption\n",
			wantErr: `"Year"`,
			missing: true,
		},
		{
			name:    "bad number",
			input:   header + "France,FRA,2000,abc,1,1,1,1,1\n",
			wantErr: `line 2: column "Gas production": invalid number "abc"`,
		},
		{
			name:    "fractional year",
			input:   header + "France,FRA,2000.5,1,1,1,1,1,1\n",
			wantErr: "invalid year",
		},
		{
			name:    "ragged row",
			input:   header + "France,FRA,2000\n",
			wantErr: "wrong number of fields",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.missing && !errors.Is(err, ErrMissingColumn) {
				t.Errorf("expected ErrMissingColumn, got %v", err)
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFilterBoundaries(t *testing.T) {
	f := DefaultFilter()
	tests := []struct {
		entity string
		year   int
		want   DropReason
	}{
		{"Qatar", 1979, DroppedYear},
		{"Qatar", 1980, Kept},
		{"Qatar", 1999, Kept},
		{"Qatar", 2021, Kept},
		{"Qatar", 2022, DroppedYear},
		{"World", 2015, DroppedEntity},
		{"World", 1970, DroppedEntity},
	}
	for _, tt := range tests {
		r := types.Record{Entity: tt.entity, Year: tt.year}
		if got := f.Check(&r); got != tt.want {
			t.Errorf("Check(%s, %d) = %v, want %v", tt.entity, tt.year, got, tt.want)
		}
	}
}

func TestFilterSeesExcludeChanges(t *testing.T) {
	f := DefaultFilter()
	germany := types.Record{Entity: "Germany", Year: 2000}
	if got := f.Check(&germany); got != Kept {
		t.Fatalf("Check(Germany) = %v before exclusion", got)
	}

	f.Exclude = append(f.Exclude, "Germany")
	if got := f.Check(&germany); got != DroppedEntity {
		t.Errorf("Check(Germany) = %v after exclusion, want DroppedEntity", got)
	}
	ds := &types.Dataset{Records: []types.Record{germany, {Entity: "France", Year: 2000}}}
	out, stats := Clean(ds, f)
	if out.Len() != 1 || stats.DroppedEntity != 1 {
		t.Errorf("Clean after exclusion: records=%+v stats=%+v", out.Records, stats)
	}
}

func TestCleanDropsEveryExcludedEntity(t *testing.T) {
	if len(DefaultExcluded) != 17 {
		t.Fatalf("exclusion list has %d names, want 17", len(DefaultExcluded))
	}
	ds := &types.Dataset{}
	for _, name := range DefaultExcluded {
		ds.Records = append(ds.Records, types.Record{Entity: name, Year: 2000})
	}
	ds.Records = append(ds.Records, types.Record{Entity: "France", Year: 2000})

	out, stats := Clean(ds, DefaultFilter())
	if out.Len() != 1 || out.Records[0].Entity != "France" {
		t.Fatalf("unexpected records after clean: %+v", out.Records)
	}
	want := CleanStats{Read: 18, Kept: 1, DroppedEntity: 17}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	ds := loadString(t, "Germany,DEU,2015,1.5,100,0,0,0,0\n")
	Tag(ds)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Entity,Code,Year,Gas production,Gas consumption,Coal production,Coal consumption,Oil production,Oil consumption,Organizations,Region,EURU\n" +
		"Germany,DEU,2015,1.5,100,0,0,0,0,G7,Europe,EU\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestRetagDoesNotDuplicateLabelColumns(t *testing.T) {
	in := "Entity,Year,Gas production,Gas consumption,Coal production,Coal consumption,Oil production,Oil consumption,Organizations,Region,EURU\n" +
		"Germany,2015,0,0,0,0,0,0,Other,Other,Other\n"
	ds, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Records[0].Region != types.RegionOther {
		t.Fatalf("labels should be read back, got %+v", ds.Records[0].Labels)
	}
	Tag(ds)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Count(lines[0], "Region") != 1 {
		t.Errorf("header duplicated label columns: %s", lines[0])
	}
	if !strings.HasSuffix(lines[1], "G7,Europe,EU") {
		t.Errorf("row not re-tagged: %s", lines[1])
	}
}

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	if err := os.WriteFile(path, []byte(header+body), 0600); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return path
}

type recordingSink struct {
	got *types.Dataset
}

func (s *recordingSink) SaveDataset(_ context.Context, ds *types.Dataset) error {
	s.got = ds
	return nil
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, ""+
		"Germany,DEU,2015,0,100,0,0,0,0\n"+
		"World,OWID_WRL,2015,1,1,1,1,1,1\n"+
		"Qatar,QAT,1979,1,1,1,1,1,1\n"+
		"Qatar,QAT,1980,1,1,1,1,1,1\n"+
		"Qatar,QAT,1999,1,1,1,1,1,1\n"+
		"Qatar,QAT,2021,1,1,1,1,1,1\n"+
		"Qatar,QAT,2022,1,1,1,1,1,1\n")
	output := filepath.Join(dir, "fossil_use.csv")
	sink := &recordingSink{}

	res, err := Run(context.Background(), Options{
		Input:  input,
		Output: output,
		Filter: DefaultFilter(),
		Sinks:  []Sink{sink},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Stats.Kept != 4 || res.Stats.DroppedEntity != 1 || res.Stats.DroppedOutside != 2 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	if sink.got == nil || sink.got.Len() != 4 {
		t.Fatalf("sink did not receive cleaned dataset")
	}

	written, err := LoadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var years []int
	for _, r := range written.Records {
		if r.Entity == "World" {
			t.Error("excluded entity World present in output")
		}
		if r.Entity == "Germany" {
			want := types.Labels{Organization: types.OrgG7, Region: types.RegionEurope, EuroBloc: types.BlocEU}
			if r.Labels != want {
				t.Errorf("Germany labels = %+v, want %+v", r.Labels, want)
			}
		}
		if r.Entity == "Qatar" {
			years = append(years, r.Year)
		}
	}
	if diff := cmp.Diff([]int{1980, 1999, 2021}, years); diff != "" {
		t.Errorf("Qatar years mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFailsWhenLocked(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "France,FRA,2000,1,1,1,1,1,1\n")
	output := filepath.Join(dir, "out.csv")

	held := flock.New(LockPath(output))
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("could not take lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	_, err := Run(context.Background(), Options{Input: input, Output: output, Filter: DefaultFilter()})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), Options{
		Input:  filepath.Join(dir, "missing.csv"),
		Output: filepath.Join(dir, "out.csv"),
		Filter: DefaultFilter(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.csv")); !os.IsNotExist(statErr) {
		t.Error("output should not be created when input is missing")
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	ds := loadString(t, "Brazil,BRA,2010,2.5,3,0,0,7,8\n")
	Tag(ds)
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := WriteFile(path, ds); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	back, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if back.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", back.Len())
	}
	r := back.Records[0]
	if r.Entity != "Brazil" || r.Year != 2010 || r.GasProduction != 2.5 || r.OilConsumption != 8 {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Organization != types.OrgBRICS || r.Region != types.RegionSouthAmerica {
		t.Errorf("labels not preserved: %+v", r.Labels)
	}
	if r.Extra["Code"] != "BRA" {
		t.Errorf("Code = %q", r.Extra["Code"])
	}
}

func TestWriteXLSXLeavesNoTempFiles(t *testing.T) {
	ds := loadString(t, "Brazil,BRA,2010,2.5,3,0,0,7,8\n")
	Tag(ds)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	// Replacing an existing workbook goes through rename, not an in-place rewrite.
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, ds); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"out.xlsx"}, names); diff != "" {
		t.Errorf("directory contents mismatch (-want +got):\n%s", diff)
	}
	back, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile after replace: %v", err)
	}
	if back.Len() != 1 {
		t.Errorf("expected 1 record, got %d", back.Len())
	}
}

func TestWriteXLSXMissingDirectory(t *testing.T) {
	ds := loadString(t, "Brazil,BRA,2010,2.5,3,0,0,7,8\n")
	Tag(ds)
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	if err := WriteXLSX(path, ds); err == nil {
		t.Fatal("expected error for missing output directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("no workbook should exist at %s", path)
	}
}
