package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/untoldecay/fossiluse/internal/types"
)

// OutputColumns is the header written for ds: its input columns followed by
// the three label columns.
func OutputColumns(ds *types.Dataset) []string {
	cols := make([]string, 0, len(ds.Columns)+len(types.LabelColumns))
	cols = append(cols, ds.Columns...)
	return append(cols, types.LabelColumns...)
}

// cell renders one column of a record as text
func cell(r *types.Record, col string) string {
	if col == types.ColYear {
		return strconv.Itoa(r.Year)
	}
	if v, ok := r.Value(col); ok {
		return formatFloat(v)
	}
	if v, ok := r.Label(col); ok {
		return v
	}
	return r.Extra[col]
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes ds as a CSV table with the label columns appended.
func WriteCSV(w io.Writer, ds *types.Dataset) error {
	cw := csv.NewWriter(w)
	cols := OutputColumns(ds)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	row := make([]string, len(cols))
	for i := range ds.Records {
		for j, col := range cols {
			row[j] = cell(&ds.Records[i], col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SheetName is the worksheet used for XLSX output
const SheetName = "fossil_use"

// WriteXLSX writes ds to an Excel workbook at path, through a temp file
// and rename like WriteFile.
func WriteXLSX(path string, ds *types.Dataset) error {
	return writeAtomic(path, func(w io.Writer) error { return EncodeXLSX(w, ds) })
}

// EncodeXLSX writes ds as an Excel workbook to w. Numeric columns are
// stored as numbers.
func EncodeXLSX(w io.Writer, ds *types.Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	cols := OutputColumns(ds)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range ds.Records {
		r := &ds.Records[i]
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			switch {
			case col == types.ColYear:
				row[j] = r.Year
			default:
				if v, ok := r.Value(col); ok {
					row[j] = v
				} else {
					row[j] = cell(r, col)
				}
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(ref, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteFile persists ds to path. XLSX is chosen by extension; everything
// else is CSV. Either way the table goes through a temp file in the same
// directory and a rename, so readers never see a partial table.
func WriteFile(path string, ds *types.Dataset) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(path, ds)
	}
	return writeAtomic(path, func(w io.Writer) error { return WriteCSV(w, ds) })
}

func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
