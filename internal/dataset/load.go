// Package dataset implements the load, clean, tag and persist stages of the
// fossil pipeline.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/untoldecay/fossiluse/internal/types"
)

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must be present in every input table.
var requiredColumns = append([]string{types.ColEntity, types.ColYear}, types.FuelColumns...)

// missingMarkers are cell values treated as "no data". They are filled
// with zero on load.
var missingMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
}

func isMissing(s string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// LoadFile reads a dataset from path. Files ending in .xlsx are read from
// their first sheet; anything else is parsed as CSV.
func LoadFile(path string) (*types.Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}

	// #nosec G304 - path comes from the command line or config
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Load parses a CSV table. Missing numeric cells are filled with zero;
// missing cells in pass-through columns become "0". Label columns, when
// present, are read back into each record's Labels.
func Load(r io.Reader) (*types.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: input is empty", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	p, err := newRowParser(header)
	if err != nil {
		return nil, err
	}

	ds := &types.Dataset{Columns: p.columns}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := p.parse(row, line)
		if err != nil {
			return nil, err
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func loadXLSX(path string) (*types.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%s: reading sheet: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: input is empty", path, ErrMissingColumn)
	}

	p, err := newRowParser(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds := &types.Dataset{Columns: p.columns}
	for i, row := range rows[1:] {
		// GetRows drops trailing empty cells
		for len(row) < len(rows[0]) {
			row = append(row, "")
		}
		rec, err := p.parse(row, i+2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// rowParser turns string rows into records for a fixed header layout.
type rowParser struct {
	header  []string
	columns []string // header without label columns
	index   map[string]int
}

func newRowParser(header []string) (*rowParser, error) {
	p := &rowParser{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		p.header = append(p.header, h)
		p.index[h] = i
		if !isLabelColumn(h) {
			p.columns = append(p.columns, h)
		}
	}
	for _, col := range requiredColumns {
		if _, ok := p.index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return p, nil
}

func isLabelColumn(name string) bool {
	for _, c := range types.LabelColumns {
		if c == name {
			return true
		}
	}
	return false
}

func (p *rowParser) parse(row []string, line int) (types.Record, error) {
	rec := types.Record{Entity: strings.TrimSpace(row[p.index[types.ColEntity]])}

	year, err := parseYear(row[p.index[types.ColYear]])
	if err != nil {
		return rec, fmt.Errorf("line %d: column %q: %w", line, types.ColYear, err)
	}
	rec.Year = year

	for _, col := range types.FuelColumns {
		raw := row[p.index[col]]
		if isMissing(raw) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return rec, fmt.Errorf("line %d: column %q: invalid number %q", line, col, raw)
		}
		if math.IsNaN(v) {
			v = 0
		}
		rec.SetValue(col, v)
	}

	if i, ok := p.index[types.ColOrganizations]; ok {
		rec.Organization = types.Organization(row[i])
	}
	if i, ok := p.index[types.ColRegion]; ok {
		rec.Region = types.Region(row[i])
	}
	if i, ok := p.index[types.ColEURU]; ok {
		rec.EuroBloc = types.EuroBloc(row[i])
	}

	for _, col := range p.columns {
		if isKnownColumn(col) {
			continue
		}
		v := row[p.index[col]]
		if isMissing(v) {
			v = "0"
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[col] = v
	}
	return rec, nil
}

func isKnownColumn(name string) bool {
	if name == types.ColEntity || name == types.ColYear {
		return true
	}
	for _, c := range types.FuelColumns {
		if c == name {
			return true
		}
	}
	return false
}

// parseYear accepts integers and integral floats ("1999.0"). A missing year
// is filled with zero, which the year filter then drops.
func parseYear(raw string) (int, error) {
	if isMissing(raw) {
		return 0, nil
	}
	raw = strings.TrimSpace(raw)
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return int(f), nil
}
